package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/payroll-roster/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	position    INTEGER PRIMARY KEY,
	name        TEXT    NOT NULL,
	emp_id      INTEGER NOT NULL,
	kind        TEXT    NOT NULL,
	basic_pay   INTEGER NOT NULL,
	allowances  INTEGER NOT NULL,
	deductions  INTEGER NOT NULL,
	bonus       INTEGER NOT NULL DEFAULT 0
)`

// Repository stores a roster in a SQLite database file. Amounts are kept in
// cents; position preserves roster order.
type Repository struct{}

func New() *Repository { return &Repository{} }

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrIOFailure, path, err)
	}
	return db, nil
}

// Load reads the roster from the database at path. A missing file is an empty
// roster and is not created. Rows with an unknown kind are skipped.
func (r *Repository) Load(ctx context.Context, path string) ([]domain.Employee, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("%w: prepare %s: %w", domain.ErrIOFailure, path, err)
	}
	rows, err := db.QueryContext(ctx, `
		SELECT name, emp_id, kind, basic_pay, allowances, deductions, bonus
		FROM employees ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrIOFailure, path, err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var (
			e    domain.Employee
			kind string
		)
		if err := rows.Scan(&e.Name, &e.ID, &kind, &e.BasicPay, &e.Allowances, &e.Deductions, &e.Bonus); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrIOFailure, path, err)
		}
		k, ok := domain.KindFromLiteral(kind)
		if !ok {
			continue
		}
		out = append(out, domain.New(k, e.Name, e.ID, e.BasicPay, e.Allowances, e.Deductions, e.Bonus))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIOFailure, path, err)
	}
	return out, nil
}

// Save replaces every row in one transaction.
func (r *Repository) Save(ctx context.Context, path string, employees []domain.Employee) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %w", domain.ErrIOFailure, path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: prepare %s: %w", domain.ErrIOFailure, path, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("%w: clear %s: %w", domain.ErrIOFailure, path, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (position, name, emp_id, kind, basic_pay, allowances, deductions, bonus)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", domain.ErrIOFailure, err)
	}
	defer stmt.Close()

	for i, e := range employees {
		if _, err := stmt.ExecContext(ctx,
			i, e.Name, e.ID, e.Kind.String(),
			int64(e.BasicPay), int64(e.Allowances), int64(e.Deductions), int64(e.Bonus),
		); err != nil {
			return fmt.Errorf("%w: insert %q: %w", domain.ErrIOFailure, e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", domain.ErrIOFailure, path, err)
	}
	return nil
}
