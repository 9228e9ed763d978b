package flatfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/csg33k/payroll-roster/internal/domain"
)

// Repository stores a roster as a text file. Writes go straight to the target
// path; there is no temp file and no rename, so a crash mid-save can leave a
// truncated file.
type Repository struct {
	codec *Codec
}

func NewRepository(codec *Codec) *Repository {
	return &Repository{codec: codec}
}

func (r *Repository) Codec() *Codec { return r.codec }

// Load reads the roster at path. A missing file is an empty roster.
func (r *Repository) Load(ctx context.Context, path string) ([]domain.Employee, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrIOFailure, path, err)
	}
	defer f.Close()
	return r.codec.Decode(ctx, f)
}

// Save truncates path and writes every record to it.
func (r *Repository) Save(ctx context.Context, path string, employees []domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrIOFailure, path, err)
	}
	bw := bufio.NewWriter(f)
	if err := r.codec.Encode(ctx, bw, employees); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrIOFailure, path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrIOFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrIOFailure, path, err)
	}
	return nil
}

// Preview returns a unified diff from the file at path to what Save would
// write for employees, or "" when they match.
func (r *Repository) Preview(ctx context.Context, path string, employees []domain.Employee) (string, error) {
	before, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: read %s: %w", domain.ErrIOFailure, path, err)
	}
	var buf bytes.Buffer
	if err := r.codec.Encode(ctx, &buf, employees); err != nil {
		return "", err
	}
	after := buf.String()
	if string(before) == after {
		return "", nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), string(before), after)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (unsaved)", string(before), edits)), nil
}
