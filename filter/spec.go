package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// PoemType selects poems by cycle membership.
type PoemType int

const (
	// TypeAll places no constraint on cycle membership.
	TypeAll PoemType = iota
	// TypeAllCycles selects poems that belong to any cycle.
	TypeAllCycles
	// TypeCyclesWithTitle selects poems in named cycles.
	TypeCyclesWithTitle
	// TypeCyclesWithoutTitle selects poems in unnamed cycles.
	TypeCyclesWithoutTitle
	// TypeIndividual selects poems outside any cycle.
	TypeIndividual
)

// Form option values for PoemType, as submitted by the filter form.
var poemTypeOptions = map[string]PoemType{
	"":                     TypeAll,
	"all":                  TypeAll,
	"cycles":               TypeAllCycles,
	"cycles_with_names":    TypeCyclesWithTitle,
	"cycles_without_names": TypeCyclesWithoutTitle,
	"individual":           TypeIndividual,
}

// ParsePoemType converts a form option value into a PoemType.
func ParsePoemType(s string) (PoemType, error) {
	t, ok := poemTypeOptions[strings.TrimSpace(s)]
	if !ok {
		return TypeAll, fmt.Errorf("%w: %q", ErrUnknownPoemType, s)
	}
	return t, nil
}

// String returns the form option value of t.
func (t PoemType) String() string {
	switch t {
	case TypeAllCycles:
		return "cycles"
	case TypeCyclesWithTitle:
		return "cycles_with_names"
	case TypeCyclesWithoutTitle:
		return "cycles_without_names"
	case TypeIndividual:
		return "individual"
	default:
		return "all"
	}
}

// cycleConstraint translates t into the underlying flag constraints.
// A nil pointer leaves the flag unconstrained.
func (t PoemType) cycleConstraint() (inCycle, cycleHasTitle *bool) {
	yes, no := true, false
	switch t {
	case TypeAllCycles:
		return &yes, nil
	case TypeCyclesWithTitle:
		return &yes, &yes
	case TypeCyclesWithoutTitle:
		return &yes, &no
	case TypeIndividual:
		return &no, nil
	default:
		return nil, nil
	}
}

// Spec is a sparse set of constraints over the catalog. Zero values mean
// "no constraint" for every field.
type Spec struct {
	// Search is matched case-insensitively as a substring of the title,
	// display title, text, epigraph and dedication.
	Search string

	// Type constrains cycle membership.
	Type PoemType

	// Section must equal the poem's section name exactly.
	Section string

	// MinLines and MaxLines are inclusive bounds on the line count.
	MinLines *int
	MaxLines *int

	// HasEpigraph and HasDedication require a non-blank field when set.
	HasEpigraph   bool
	HasDedication bool
}

// IsEmpty reports whether s places no constraint at all.
func (s Spec) IsEmpty() bool {
	return s.Search == "" && s.Type == TypeAll && s.Section == "" &&
		s.MinLines == nil && s.MaxLines == nil && !s.HasEpigraph && !s.HasDedication
}

// Bound returns a pointer to n for use as MinLines or MaxLines.
func Bound(n int) *int {
	return &n
}

// ParseLineBound validates free-text line bound input. Blank input is absent
// and yields (nil, nil); anything other than a non-negative integer yields
// ErrInvalidLineBound.
func ParseLineBound(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLineBound, s)
	}
	return &n, nil
}

// Form holds raw filter form values before validation.
type Form struct {
	Search        string
	PoemType      string
	Section       string
	MinLines      string
	MaxLines      string
	HasEpigraph   bool
	HasDedication bool
}
