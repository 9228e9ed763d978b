package roster_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/payroll-roster/internal/adapters/flatfile"
	"github.com/csg33k/payroll-roster/internal/adapters/flatfile/layout"
	"github.com/csg33k/payroll-roster/internal/domain"
	"github.com/csg33k/payroll-roster/internal/roster"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore() *roster.Store {
	return roster.New(flatfile.NewRepository(flatfile.MustNew(layout.Legacy)), quietLogger())
}

func example() []domain.Employee {
	return []domain.Employee{
		domain.NewManager("Alice", 1, domain.Dollars(50000), domain.Dollars(2000), domain.Dollars(500), domain.Dollars(3000)),
		domain.NewDeveloper("Bob", 2, domain.Dollars(40000), domain.Dollars(1000), domain.Dollars(200)),
		domain.NewIntern("Cara", 3, domain.Dollars(20000), 0, 0),
	}
}

// memRepo is a repository without change preview.
type memRepo struct {
	saved   map[string][]domain.Employee
	saveErr error
}

func (m *memRepo) Load(_ context.Context, path string) ([]domain.Employee, error) {
	return m.saved[path], nil
}

func (m *memRepo) Save(_ context.Context, path string, employees []domain.Employee) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = map[string][]domain.Employee{}
	}
	m.saved[path] = append([]domain.Employee(nil), employees...)
	return nil
}

func TestStore_AddAndAll(t *testing.T) {
	s := newStore()
	assert.Empty(t, s.All())
	assert.Equal(t, 0, s.Len())

	for _, e := range example() {
		s.Add(e)
	}
	s.Add(domain.NewIntern("Cara again", 3, 0, 0, 0)) // duplicate id

	all := s.All()
	require.Len(t, all, 4)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Cara again", all[3].Name)

	// All returns a copy.
	all[0].Name = "mutated"
	assert.Equal(t, "Alice", s.All()[0].Name)
}

func TestStore_TotalPayroll(t *testing.T) {
	s := newStore()
	assert.Equal(t, domain.Cents(0), s.TotalPayroll())

	for _, e := range example() {
		s.Add(e)
	}
	assert.Equal(t, domain.Dollars(115300), s.TotalPayroll())

	var want domain.Cents
	for _, e := range s.All() {
		want += e.Salary()
	}
	assert.Equal(t, want, s.TotalPayroll())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.txt")
	ctx := context.Background()

	s := newStore()
	for _, e := range example() {
		s.Add(e)
	}
	require.NoError(t, s.Save(ctx, path))

	reloaded := newStore()
	require.NoError(t, reloaded.Load(ctx, path))
	assert.Equal(t, s.All(), reloaded.All())
	assert.Equal(t, s.TotalPayroll(), reloaded.TotalPayroll())
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt")))
	assert.Equal(t, 0, s.Len())
}

func TestStore_LoadReplacesRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.txt")
	require.NoError(t, os.WriteFile(path, []byte("Bob,2,Developer,40000,1000,200\n"), 0o644))

	s := newStore()
	s.Add(domain.NewIntern("Temp", 9, 0, 0, 0))
	require.NoError(t, s.Load(context.Background(), path))
	require.Len(t, s.All(), 1)
	assert.Equal(t, "Bob", s.All()[0].Name)
}

func TestStore_LoadErrorKeepsRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice,1,Manager,1,1,1\n"), 0o644))

	s := newStore()
	s.Add(domain.NewIntern("Keep", 9, 0, 0, 0))
	err := s.Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	require.Len(t, s.All(), 1)
	assert.Equal(t, "Keep", s.All()[0].Name)
}

func TestStore_LoadErrTracksUnreadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bad := filepath.Join(dir, "employees.txt")
	require.NoError(t, os.WriteFile(bad, []byte("Alice,1,Manager,1,1,1\n"), 0o644))

	s := newStore()
	assert.NoError(t, s.LoadErr())
	require.Error(t, s.Load(ctx, bad))
	assert.ErrorIs(t, s.LoadErr(), domain.ErrMalformedRecord)

	require.NoError(t, s.Load(ctx, filepath.Join(dir, "missing.txt")))
	assert.NoError(t, s.LoadErr(), "successful load clears it")

	require.Error(t, s.Load(ctx, bad))
	require.NoError(t, s.Save(ctx, bad))
	assert.NoError(t, s.LoadErr(), "successful save clears it")
}

func TestStore_SaveErrorKeepsLoadErr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.txt")
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
	s := newStore()
	require.Error(t, s.Load(context.Background(), path))
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	require.Error(t, s.Save(context.Background(), path))
	assert.Error(t, s.LoadErr())
}

func TestStore_SaveErrorKeepsRoster(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("disk full")}
	s := roster.New(repo, quietLogger())
	for _, e := range example() {
		s.Add(e)
	}
	require.Error(t, s.Save(context.Background(), "x"))
	assert.Len(t, s.All(), 3)
}

func TestStore_PreviewSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.txt")
	s := newStore()
	s.Add(example()[1])

	diff, err := s.PreviewSave(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, diff, "+Bob,2,Developer,40000,1000,200")
}

func TestStore_PreviewUnsupported(t *testing.T) {
	s := roster.New(&memRepo{}, quietLogger())
	_, err := s.PreviewSave(context.Background(), "x")
	assert.ErrorIs(t, err, roster.ErrPreviewUnsupported)
}

func TestStore_Summary(t *testing.T) {
	s := roster.New(&memRepo{}, nil)
	for _, e := range example() {
		s.Add(e)
	}
	at := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	sum := s.Summary(at)
	assert.Equal(t, domain.Dollars(115300), sum.Total)
	assert.Len(t, sum.Employees, 3)
	require.Len(t, sum.ByKind, 3)
	assert.Equal(t, domain.KindTotal{Kind: domain.KindManager, Count: 1, Total: domain.Dollars(54500)}, sum.ByKind[0])
}
