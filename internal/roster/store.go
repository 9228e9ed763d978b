// Package roster holds the session's ordered employee list and moves it to and
// from a repository. A Store is owned by a single goroutine; it does no locking.
package roster

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/csg33k/payroll-roster/internal/domain"
	"github.com/csg33k/payroll-roster/internal/ports"
)

// ErrPreviewUnsupported is returned by PreviewSave when the repository cannot
// show pending changes.
var ErrPreviewUnsupported = errors.New("change preview not supported by this storage driver")

type Store struct {
	repo      ports.RosterRepository
	log       *slog.Logger
	employees []domain.Employee
	loadErr   error
}

func New(repo ports.RosterRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, log: logger}
}

// Add appends e. Duplicate ids are accepted.
func (s *Store) Add(e domain.Employee) {
	s.employees = append(s.employees, e)
}

// All returns a copy of the roster in insertion order.
func (s *Store) All() []domain.Employee {
	return append([]domain.Employee(nil), s.employees...)
}

func (s *Store) Len() int { return len(s.employees) }

// TotalPayroll is the sum of every record's salary, zero when empty.
func (s *Store) TotalPayroll() domain.Cents {
	return domain.TotalPayroll(s.employees)
}

func (s *Store) Summary(at time.Time) domain.PayrollSummary {
	return domain.Summarize(s.employees, at)
}

// Save writes the whole roster to path, replacing its contents. The in-memory
// roster is untouched whether or not the save succeeds.
func (s *Store) Save(ctx context.Context, path string) error {
	if err := s.repo.Save(ctx, path, s.employees); err != nil {
		s.log.Error("roster save failed", "path", path, "err", err)
		return err
	}
	s.log.Info("roster saved", "path", path, "records", len(s.employees))
	s.loadErr = nil
	return nil
}

// Load replaces the roster with the records at path. A missing file gives an
// empty roster. On error the current roster is kept.
func (s *Store) Load(ctx context.Context, path string) error {
	loaded, err := s.repo.Load(ctx, path)
	if err != nil {
		s.log.Error("roster load failed", "path", path, "err", err)
		s.loadErr = err
		return err
	}
	s.employees = loaded
	s.loadErr = nil
	s.log.Info("roster loaded", "path", path, "records", len(loaded))
	return nil
}

// LoadErr reports the error from the last Load if it failed and nothing has
// been saved or loaded successfully since. A non-nil result means the file on
// disk holds data the roster never read.
func (s *Store) LoadErr() error { return s.loadErr }

// PreviewSave returns a diff of what Save(ctx, path) would change, or "" if
// nothing would.
func (s *Store) PreviewSave(ctx context.Context, path string) (string, error) {
	p, ok := s.repo.(ports.ChangePreviewer)
	if !ok {
		return "", ErrPreviewUnsupported
	}
	return p.Preview(ctx, path, s.employees)
}
