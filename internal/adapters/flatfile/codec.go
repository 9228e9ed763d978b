package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/csg33k/payroll-roster/internal/adapters/flatfile/layout"
	"github.com/csg33k/payroll-roster/internal/domain"
)

// maxLineLen bounds a single roster line; long names are fine, binary junk is not.
const maxLineLen = 1 << 20

type Codec struct {
	layout *layout.Layout
}

// New returns a codec for the named layout. An unknown name still yields a
// usable legacy codec together with an error describing the fallback.
func New(name string) (*Codec, error) {
	if name == "" {
		name = layout.DefaultName
	}
	l, exact := layout.ForName(name)
	if !exact {
		return &Codec{layout: l}, fmt.Errorf("no roster layout %q; using %q", name, layout.DefaultName)
	}
	return &Codec{layout: l}, nil
}

func MustNew(name string) *Codec {
	l, _ := layout.ForName(name)
	return &Codec{layout: l}
}

func (c *Codec) Layout() *layout.Layout { return c.layout }

// Encode writes one line per record in roster order. Managers get their bonus
// either on a following "Bonus: <n>" line or as a trailing field, depending on
// the layout. Names are written verbatim; a comma in a name is not escaped.
func (c *Codec) Encode(ctx context.Context, w io.Writer, employees []domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range employees {
		e := &employees[i]
		if _, err := io.WriteString(w, c.recordLine(e)+"\n"); err != nil {
			return err
		}
		if e.Kind == domain.KindManager && c.layout.Bonus == layout.BonusNextLine {
			if _, err := io.WriteString(w, layout.BonusPrefix+e.Bonus.Decimal()+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Codec) recordLine(e *domain.Employee) string {
	n := c.layout.FieldCount()
	if e.Kind == domain.KindManager {
		n = c.layout.ManagerFieldCount()
	}
	fields := make([]string, n)
	c.put(fields, "Name", e.Name)
	c.put(fields, "ID", strconv.Itoa(e.ID))
	c.put(fields, "Kind", e.Kind.String())
	c.put(fields, "BasicPay", e.BasicPay.Decimal())
	c.put(fields, "Allowances", e.Allowances.Decimal())
	c.put(fields, "Deductions", e.Deductions.Decimal())
	if e.Kind == domain.KindManager && c.layout.Bonus == layout.BonusTrailing {
		fields[n-1] = e.Bonus.Decimal()
	}
	return strings.Join(fields, layout.Separator)
}

func (c *Codec) put(fields []string, name, value string) {
	fields[c.layout.Field(name).Index] = value
}

// Decode reads records until EOF. Lines whose kind literal is unknown are
// skipped without consuming a bonus line. The first unparsable line aborts the
// whole decode with a *domain.MalformedRecordError.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}

	var out []domain.Employee
	for {
		line, ok := next()
		if !ok {
			break
		}
		parts := strings.Split(line, layout.Separator)
		if len(parts) != c.layout.FieldCount() && len(parts) != c.layout.ManagerFieldCount() {
			return nil, malformed(lineNo, line, fmt.Sprintf("want %d fields, got %d", c.layout.FieldCount(), len(parts)), nil)
		}
		e, err := c.parseRecord(parts)
		if err != nil {
			return nil, malformed(lineNo, line, "invalid field", err)
		}
		if !e.Kind.Valid() {
			continue
		}

		switch {
		case e.Kind != domain.KindManager:
			if len(parts) != c.layout.FieldCount() {
				return nil, malformed(lineNo, line, fmt.Sprintf("%s record wants %d fields, got %d", e.Kind, c.layout.FieldCount(), len(parts)), nil)
			}
		case c.layout.Bonus == layout.BonusTrailing:
			if len(parts) != c.layout.ManagerFieldCount() {
				return nil, malformed(lineNo, line, "manager record is missing the bonus field", nil)
			}
			if e.Bonus, err = domain.ParseCents(parts[len(parts)-1]); err != nil {
				return nil, malformed(lineNo, line, "invalid bonus", err)
			}
		default:
			bonusLine, ok := next()
			if !ok {
				if err := sc.Err(); err != nil {
					return nil, scanErr(err, lineNo)
				}
				return nil, malformed(lineNo+1, "", "missing bonus line after manager record", nil)
			}
			if e.Bonus, err = parseBonusLine(bonusLine); err != nil {
				return nil, malformed(lineNo, bonusLine, "invalid bonus line", err)
			}
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, scanErr(err, lineNo)
	}
	return out, nil
}

// parseRecord parses the common fields. Numbers are checked before the kind
// so a bad amount is reported even on a line that would be skipped.
func (c *Codec) parseRecord(parts []string) (domain.Employee, error) {
	var e domain.Employee
	e.Name = parts[c.layout.Field("Name").Index]

	idText := strings.TrimSpace(parts[c.layout.Field("ID").Index])
	id, err := strconv.Atoi(idText)
	if err != nil {
		return e, fmt.Errorf("id %q is not an integer", idText)
	}
	e.ID = id

	amounts := []struct {
		name string
		dst  *domain.Cents
	}{
		{"BasicPay", &e.BasicPay},
		{"Allowances", &e.Allowances},
		{"Deductions", &e.Deductions},
	}
	for _, a := range amounts {
		v, err := domain.ParseCents(parts[c.layout.Field(a.name).Index])
		if err != nil {
			return e, fmt.Errorf("%s: %w", a.name, err)
		}
		*a.dst = v
	}

	if k, ok := domain.KindFromLiteral(parts[c.layout.Field("Kind").Index]); ok {
		e.Kind = k
	}
	return e, nil
}

// parseBonusLine takes the second ':'-separated segment of the line, so
// "Bonus: 3000" yields 3000. The label itself is not checked.
func parseBonusLine(line string) (domain.Cents, error) {
	segs := strings.Split(line, layout.BonusSeparator)
	if len(segs) < 2 {
		return 0, fmt.Errorf("no %q in %q", layout.BonusSeparator, line)
	}
	return domain.ParseCents(segs[1])
}

func malformed(line int, text, reason string, err error) error {
	return &domain.MalformedRecordError{Line: line, Text: text, Reason: reason, Err: err}
}

// scanErr classifies a scanner failure after lineNo complete lines. An
// over-long line is bad data, not a failing reader.
func scanErr(err error, lineNo int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return malformed(lineNo+1, "", fmt.Sprintf("line exceeds %d bytes", maxLineLen), err)
	}
	return readErr(err)
}

func readErr(err error) error {
	return fmt.Errorf("%w: read roster: %w", domain.ErrIOFailure, err)
}
