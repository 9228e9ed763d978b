package ports

import (
	"context"
	"io"

	"github.com/csg33k/payroll-roster/internal/domain"
)

// RosterRepository persists a whole roster at a location. Save overwrites
// whatever is there; Load of a missing location returns an empty roster and
// no error.
type RosterRepository interface {
	Load(ctx context.Context, path string) ([]domain.Employee, error)
	Save(ctx context.Context, path string, employees []domain.Employee) error
}

// ChangePreviewer is implemented by repositories that can show what a Save
// would change. An empty string means nothing would change.
type ChangePreviewer interface {
	Preview(ctx context.Context, path string, employees []domain.Employee) (string, error)
}

// ReportExporter defines the payroll report output port.
type ReportExporter interface {
	// Format is the short name users pick the exporter by, e.g. "pdf".
	Format() string
	// Extension is the file extension without the dot.
	Extension() string
	Export(ctx context.Context, s domain.PayrollSummary, w io.Writer) error
}
