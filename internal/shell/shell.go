// Package shell is the interactive, menu-driven console over a roster.Store.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/csg33k/payroll-roster/internal/domain"
	"github.com/csg33k/payroll-roster/internal/ports"
	"github.com/csg33k/payroll-roster/internal/roster"
)

const menu = `1. Add New Employee
2. Display All Employees
3. Calculate and Display Individual Salaries
4. Calculate Total Payroll
5. Save Employee Data
6. Export Payroll Report
7. Show Unsaved Changes
8. Exit`

type Options struct {
	In         io.Reader
	Out        io.Writer
	Store      *roster.Store
	Formatter  domain.AmountFormatter
	Exporters  []ports.ReportExporter
	DataFile   string
	ReportsDir string
	Logger     *slog.Logger
	// Now stamps report file names; defaults to time.Now.
	Now func() time.Time
}

type Shell struct {
	opts      Options
	in        *bufio.Scanner
	out       io.Writer
	exporters map[string]ports.ReportExporter
	formats   []string
	log       *slog.Logger

	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func New(opts Options) *Shell {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReportsDir == "" {
		opts.ReportsDir = "."
	}

	r := lipgloss.NewRenderer(opts.Out)
	s := &Shell{
		opts:      opts,
		in:        bufio.NewScanner(opts.In),
		out:       opts.Out,
		exporters: make(map[string]ports.ReportExporter, len(opts.Exporters)),
		log:       opts.Logger,
		heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		success:   r.NewStyle().Foreground(lipgloss.Color("2")),
		failure:   r.NewStyle().Foreground(lipgloss.Color("1")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
	for _, e := range opts.Exporters {
		s.exporters[e.Format()] = e
		s.formats = append(s.formats, e.Format())
	}
	return s
}

// Run shows the menu until the user exits or input ends. Errors from
// individual actions are printed and the loop continues; only a read error
// on the input is returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println("")
		s.println(s.heading.Render("--- Employee Payroll System ---"))
		s.println(menu)

		line, err := s.prompt("Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}
		choice, convErr := strconv.Atoi(line)
		if convErr != nil {
			s.println(s.failure.Render("Invalid choice. Try again."))
			continue
		}

		switch choice {
		case 1:
			err = s.addEmployee()
		case 2:
			s.displayAll()
		case 3:
			s.displaySalaries()
		case 4:
			s.displayTotal()
		case 5:
			err = s.save(ctx)
		case 6:
			err = s.export(ctx)
		case 7:
			s.showChanges(ctx)
		case 8:
			s.println("Exiting the system.")
			return nil
		default:
			s.println(s.failure.Render("Invalid choice. Try again."))
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish maps end of input to a clean exit.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		s.log.Debug("input closed")
		return nil
	}
	return err
}

func (s *Shell) println(str string) {
	fmt.Fprintln(s.out, str)
}

// prompt prints label and returns the next trimmed input line.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) promptInt(label string) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil {
			return n, nil
		}
		s.println(s.failure.Render("Please enter a whole number."))
	}
}

func (s *Shell) promptAmount(label string) (domain.Cents, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		c, convErr := domain.ParseCents(line)
		if convErr == nil {
			return c, nil
		}
		s.println(s.failure.Render("Please enter a valid amount."))
	}
}

func (s *Shell) addEmployee() error {
	name, err := s.prompt("Enter Name: ")
	if err != nil {
		return err
	}
	id, err := s.promptInt("Enter ID: ")
	if err != nil {
		return err
	}
	roleText, err := s.prompt("Enter Role (Manager/Developer/Intern): ")
	if err != nil {
		return err
	}
	kind, err := domain.ParseKind(roleText)
	if err != nil {
		s.log.Debug("add rejected", "role", roleText, "err", err)
		s.println(s.failure.Render("Invalid role. Employee not added."))
		return nil
	}

	basicPay, err := s.promptAmount("Enter Basic Pay: ")
	if err != nil {
		return err
	}
	allowances, err := s.promptAmount("Enter Allowances: ")
	if err != nil {
		return err
	}
	deductions, err := s.promptAmount("Enter Deductions: ")
	if err != nil {
		return err
	}
	var bonus domain.Cents
	if kind == domain.KindManager {
		if bonus, err = s.promptAmount("Enter Bonus: "); err != nil {
			return err
		}
	}

	s.opts.Store.Add(domain.New(kind, name, id, basicPay, allowances, deductions, bonus))
	s.log.Debug("employee added", "id", id, "kind", kind)
	s.println(s.success.Render("Employee added successfully."))
	return nil
}

func (s *Shell) displayAll() {
	employees := s.opts.Store.All()
	if len(employees) == 0 {
		s.println("No employees found.")
		return
	}
	s.println("")
	s.println(s.heading.Render("--- Employee Details ---"))
	for _, e := range employees {
		s.println(e.Describe(s.opts.Formatter))
	}
}

func (s *Shell) displaySalaries() {
	employees := s.opts.Store.All()
	if len(employees) == 0 {
		s.println("No employees to calculate salary.")
		return
	}
	s.println("")
	s.println(s.heading.Render("--- Salary Details ---"))
	for _, e := range employees {
		s.println(fmt.Sprintf("Salary for %s (ID: %d): %s", e.Name, e.ID, s.opts.Formatter.Format(e.Salary())))
	}
}

func (s *Shell) displayTotal() {
	if s.opts.Store.Len() == 0 {
		s.println("No employees found.")
		return
	}
	s.println("Total Payroll: " + s.opts.Formatter.Format(s.opts.Store.TotalPayroll()))
}

// save writes the roster to the data file. If the file failed to load at
// startup its contents were never read, so the user must confirm replacing it.
func (s *Shell) save(ctx context.Context) error {
	if loadErr := s.opts.Store.LoadErr(); loadErr != nil {
		s.println(s.failure.Render("Warning: " + s.opts.DataFile + " could not be loaded (" + loadErr.Error() + ")."))
		s.println(s.failure.Render("Saving will replace its contents with the current roster."))
		answer, err := s.prompt("Overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			s.println(s.muted.Render("Save cancelled."))
			return nil
		}
	}
	if err := s.opts.Store.Save(ctx, s.opts.DataFile); err != nil {
		s.println(s.failure.Render("Error saving employee data: " + err.Error()))
		return nil
	}
	s.println(s.success.Render("Employee data saved successfully."))
	return nil
}

func (s *Shell) export(ctx context.Context) error {
	if len(s.formats) == 0 {
		s.println(s.failure.Render("No report formats are configured."))
		return nil
	}
	format, err := s.prompt("Enter format (" + strings.Join(s.formats, "/") + "): ")
	if err != nil {
		return err
	}
	exp, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		s.println(s.failure.Render("Unknown report format: " + format))
		return nil
	}

	path, err := s.writeReport(ctx, exp)
	if err != nil {
		s.log.Error("report export failed", "format", exp.Format(), "err", err)
		s.println(s.failure.Render("Error exporting report: " + err.Error()))
		return nil
	}
	s.log.Info("report exported", "format", exp.Format(), "path", path)
	s.println(s.success.Render("Report written to " + path))
	return nil
}

// writeReport renders one report into the reports dir. A partial file is
// removed on failure.
func (s *Shell) writeReport(ctx context.Context, exp ports.ReportExporter) (string, error) {
	now := s.opts.Now()
	if err := os.MkdirAll(s.opts.ReportsDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %w", domain.ErrIOFailure, s.opts.ReportsDir, err)
	}
	path := filepath.Join(s.opts.ReportsDir, "payroll_"+now.Format("20060102-150405")+"."+exp.Extension())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", domain.ErrIOFailure, path, err)
	}

	w := bufio.NewWriter(f)
	err = exp.Export(ctx, s.opts.Store.Summary(now), w)
	if err == nil {
		if ferr := w.Flush(); ferr != nil {
			err = fmt.Errorf("%w: write %s: %w", domain.ErrIOFailure, path, ferr)
		}
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: close %s: %w", domain.ErrIOFailure, path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *Shell) showChanges(ctx context.Context) {
	diff, err := s.opts.Store.PreviewSave(ctx, s.opts.DataFile)
	switch {
	case errors.Is(err, roster.ErrPreviewUnsupported):
		s.println(s.muted.Render("Change preview is not available for this storage driver."))
	case err != nil:
		s.println(s.failure.Render("Error computing changes: " + err.Error()))
	case diff == "":
		s.println("No unsaved changes.")
	default:
		fmt.Fprint(s.out, diff)
	}
}
