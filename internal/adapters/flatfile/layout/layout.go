// Package layout defines the line layouts of the roster text file. The legacy
// layout is the historical two-line manager format and stays the default;
// the inline layout keeps a manager's bonus on the record line.
package layout

const (
	Separator      = ","
	BonusSeparator = ":"
	BonusPrefix    = "Bonus: "
)

type FieldType int

const (
	Text   FieldType = iota // written verbatim, never trimmed
	Int                     // base-10 integer
	Amount                  // plain decimal amount
	Kind                    // exact kind literal
)

type Field struct {
	Name  string
	Index int // 0-based position on the record line
	Type  FieldType
}

// BonusPlacement says where a manager's bonus lives.
type BonusPlacement int

const (
	BonusNextLine BonusPlacement = iota // "Bonus: <n>" on the following line
	BonusTrailing                       // extra trailing field on the record line
)

type Layout struct {
	Name        string
	Description string
	Fields      []Field
	Bonus       BonusPlacement
}

// FieldCount is the number of separator-delimited fields of a non-manager
// record line.
func (l *Layout) FieldCount() int { return len(l.Fields) }

// ManagerFieldCount is the field count of a manager record line.
func (l *Layout) ManagerFieldCount() int {
	if l.Bonus == BonusTrailing {
		return len(l.Fields) + 1
	}
	return len(l.Fields)
}

// Field returns the field called name. Unknown names panic; that is a codec
// bug, not bad input.
func (l *Layout) Field(name string) Field {
	for _, f := range l.Fields {
		if f.Name == name {
			return f
		}
	}
	panic("layout: field " + name + " not defined in " + l.Name)
}

const (
	Legacy = "legacy"
	Inline = "inline"

	DefaultName = Legacy
)

func Supported() []string { return []string{Legacy, Inline} }

// ForName returns the named layout. Unknown names fall back to the default
// layout with ok=false.
func ForName(name string) (*Layout, bool) {
	l, ok := layouts[name]
	if !ok {
		l = layouts[DefaultName]
	}
	return l, ok
}

var layouts = map[string]*Layout{
	Legacy: legacy(),
	Inline: inline(),
}

func recordFields() []Field {
	return []Field{
		{Name: "Name", Index: 0, Type: Text},
		{Name: "ID", Index: 1, Type: Int},
		{Name: "Kind", Index: 2, Type: Kind},
		{Name: "BasicPay", Index: 3, Type: Amount},
		{Name: "Allowances", Index: 4, Type: Amount},
		{Name: "Deductions", Index: 5, Type: Amount},
	}
}

func legacy() *Layout {
	return &Layout{
		Name:        Legacy,
		Description: "six fields per line, manager bonus on the following \"Bonus: <n>\" line",
		Fields:      recordFields(),
		Bonus:       BonusNextLine,
	}
}

func inline() *Layout {
	return &Layout{
		Name:        Inline,
		Description: "one line per record, manager bonus as a seventh field",
		Fields:      recordFields(),
		Bonus:       BonusTrailing,
	}
}
