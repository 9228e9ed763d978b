package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/payroll-roster/internal/adapters/sqlite"
	"github.com/csg33k/payroll-roster/internal/domain"
)

func example() []domain.Employee {
	return []domain.Employee{
		domain.NewManager("Alice", 1, domain.Dollars(50000), domain.Dollars(2000), domain.Dollars(500), domain.Dollars(3000)),
		domain.NewDeveloper("Bob, Jr.", 2, domain.Dollars(40000), domain.Dollars(1000), domain.Dollars(200)),
		domain.NewIntern("Cara", 3, 123, 0, 0),
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	repo := sqlite.New()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, path, example()))
	got, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, example(), got)
}

func TestRepository_SaveReplacesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	repo := sqlite.New()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, path, example()))
	require.NoError(t, repo.Save(ctx, path, example()[2:]))

	got, err := repo.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cara", got[0].Name)
}

func TestRepository_LoadMissingDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	got, err := sqlite.New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRepository_SkipsUnknownKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	ctx := context.Background()
	require.NoError(t, sqlite.New().Save(ctx, path, example()[:1]))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO employees (position, name, emp_id, kind, basic_pay, allowances, deductions, bonus)
		VALUES (5, 'Xavier', 9, 'Contractor', 1, 1, 1, 0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	got, err := sqlite.New().Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
}
