package domain

import "time"

// KindTotal is the head count and salary subtotal for one kind.
type KindTotal struct {
	Kind  Kind
	Count int
	Total Cents
}

// PayrollSummary carries everything a payroll report renders.
type PayrollSummary struct {
	Employees   []Employee
	ByKind      []KindTotal // always one entry per kind, in Kinds() order
	Total       Cents
	GeneratedAt time.Time
}

// TotalPayroll sums Salary over employees; zero for an empty slice.
func TotalPayroll(employees []Employee) Cents {
	var total Cents
	for _, e := range employees {
		total += e.Salary()
	}
	return total
}

// Summarize builds a report summary. The employee slice is copied.
func Summarize(employees []Employee, at time.Time) PayrollSummary {
	s := PayrollSummary{
		Employees:   append([]Employee(nil), employees...),
		GeneratedAt: at,
	}
	idx := make(map[Kind]int, 3)
	for i, k := range Kinds() {
		s.ByKind = append(s.ByKind, KindTotal{Kind: k})
		idx[k] = i
	}
	for _, e := range employees {
		salary := e.Salary()
		s.Total += salary
		if i, ok := idx[e.Kind]; ok {
			s.ByKind[i].Count++
			s.ByKind[i].Total += salary
		}
	}
	return s
}
