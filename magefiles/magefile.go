//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary   = "bin/payroll"
	templDir = "./internal/templates"
)

// Generate runs templ generate targeting the templates directory.
func Generate() error {
	if _, err := exec.LookPath("templ"); err != nil {
		fmt.Println(">> templ not found; install with:")
		fmt.Println("   go install github.com/a-h/templ/cmd/templ@latest")
		return err
	}
	fmt.Println(">> templ generate", templDir)
	return sh.Run("templ", "generate", templDir)
}

// Build generates templates and tidies deps, then compiles to ./bin/payroll.
func Build() error {
	mg.Deps(Generate, Tidy)
	fmt.Println(">> Building payroll binary...")
	return sh.Run("go", "build", "-o", binary, "./cmd/payroll")
}

// Run builds then starts the interactive console.
func Run() error {
	mg.Deps(Build)
	return runInteractive("./" + binary)
}

// Dev starts the console via go run against the working directory's roster.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/payroll ...")
	return runInteractive("go", "run", "./cmd/payroll")
}

// runInteractive wires the child to this terminal; sh.Run does not pass stdin.
func runInteractive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// InitConfig writes a default payroll.yaml into the working directory.
func InitConfig() error {
	return sh.RunV("go", "run", "./cmd/payroll", "-init-config", "payroll.yaml")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	mg.Deps(Generate)
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and generated reports.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	reports := os.Getenv("PAYROLL_REPORTS_DIR")
	if reports == "" {
		reports = "reports"
	}
	return os.RemoveAll(reports)
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/payroll")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
