package domain

import (
	"fmt"
	"strings"
)

// DefaultDataFile is the conventional roster file name used when nothing else
// is configured.
const DefaultDataFile = "employees.txt"

// Kind is the closed set of employee variants. The kind alone decides the
// salary rule and the serialized shape of a record.
type Kind int

const (
	KindManager Kind = iota + 1
	KindDeveloper
	KindIntern
)

// Kinds lists every variant in report order.
func Kinds() []Kind { return []Kind{KindManager, KindDeveloper, KindIntern} }

// String returns the literal written to the roster file ("Manager", ...).
func (k Kind) String() string {
	switch k {
	case KindManager:
		return "Manager"
	case KindDeveloper:
		return "Developer"
	case KindIntern:
		return "Intern"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the known variants.
func (k Kind) Valid() bool {
	return k == KindManager || k == KindDeveloper || k == KindIntern
}

// ParseKind matches user input case-insensitively, ignoring surrounding
// whitespace. Anything outside the closed set is ErrInvalidRole.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want Manager, Developer or Intern)", ErrInvalidRole, s)
}

// KindFromLiteral matches the exact literal stored in a roster file.
func KindFromLiteral(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if s == k.String() {
			return k, true
		}
	}
	return 0, false
}

// AmountFormatter renders an amount for display, e.g. "$54,500.00".
type AmountFormatter interface {
	Format(c Cents) string
}

// Employee is one roster record. Bonus is only meaningful for managers and
// stays zero for every other kind.
type Employee struct {
	Name       string
	ID         int
	Kind       Kind
	BasicPay   Cents
	Allowances Cents
	Deductions Cents
	Bonus      Cents
}

func NewManager(name string, id int, basicPay, allowances, deductions, bonus Cents) Employee {
	return Employee{
		Name:       name,
		ID:         id,
		Kind:       KindManager,
		BasicPay:   basicPay,
		Allowances: allowances,
		Deductions: deductions,
		Bonus:      bonus,
	}
}

func NewDeveloper(name string, id int, basicPay, allowances, deductions Cents) Employee {
	return Employee{Name: name, ID: id, Kind: KindDeveloper, BasicPay: basicPay, Allowances: allowances, Deductions: deductions}
}

func NewIntern(name string, id int, basicPay, allowances, deductions Cents) Employee {
	return Employee{Name: name, ID: id, Kind: KindIntern, BasicPay: basicPay, Allowances: allowances, Deductions: deductions}
}

// New builds a record of the given kind. The bonus is dropped for anything
// that is not a manager.
func New(kind Kind, name string, id int, basicPay, allowances, deductions, bonus Cents) Employee {
	if kind == KindManager {
		return NewManager(name, id, basicPay, allowances, deductions, bonus)
	}
	return Employee{Name: name, ID: id, Kind: kind, BasicPay: basicPay, Allowances: allowances, Deductions: deductions}
}

// Salary is basic pay plus allowances minus deductions, plus the bonus for
// managers. Inputs are not range checked and the result may be negative.
func (e Employee) Salary() Cents {
	base := e.BasicPay + e.Allowances - e.Deductions
	if e.Kind == KindManager {
		return base + e.Bonus
	}
	return base
}

// Describe returns the display line for the record; managers get a second
// line with the bonus.
func (e Employee) Describe(f AmountFormatter) string {
	line := fmt.Sprintf("ID: %d, Name: %s, Role: %s, Salary: %s", e.ID, e.Name, e.Kind, f.Format(e.Salary()))
	if e.Kind == KindManager {
		line += "\nBonus: " + f.Format(e.Bonus)
	}
	return line
}
