package calendar

import "time"

// Holiday is a public or organisation-wide day off. It overrides everything else.
type Holiday struct {
	ID   string
	Date time.Time
	Name string
}

// RecoveryDeclaration marks a date inside a recovery period either as a
// compensatory day off or as a make-up work day.
type RecoveryDeclaration struct {
	ID             string
	PeriodID       string
	PeriodName     string
	PeriodActive   bool
	Date           time.Time
	IsDayOff       bool
	HoursToRecover float64
	AppliesToAll   bool
	DepartmentID   *string
	SegmentID      *string
	CenterID       *string
}

// Scope is the set of organisational attributes a declaration is matched against.
type Scope struct {
	DepartmentID *string
	SegmentID    *string
	CenterID     *string
}

// Matches applies the recovery scope predicate: appliesToAll, or any single
// dimension that is either unset on the declaration or equal to the employee's.
func (d RecoveryDeclaration) Matches(s Scope) bool {
	if d.AppliesToAll {
		return true
	}
	return dimensionMatches(d.DepartmentID, s.DepartmentID) ||
		dimensionMatches(d.SegmentID, s.SegmentID) ||
		dimensionMatches(d.CenterID, s.CenterID)
}

// MatchesStrict ignores unset dimensions instead of treating them as
// wildcards: every set dimension must equal the employee's, and a
// declaration with no dimension set matches only through appliesToAll.
func (d RecoveryDeclaration) MatchesStrict(s Scope) bool {
	if d.AppliesToAll {
		return true
	}
	dims := [][2]*string{
		{d.DepartmentID, s.DepartmentID},
		{d.SegmentID, s.SegmentID},
		{d.CenterID, s.CenterID},
	}
	set := 0
	for _, dim := range dims {
		if dim[0] == nil {
			continue
		}
		set++
		if !equal(dim[0], dim[1]) {
			return false
		}
	}
	return set > 0
}

// MatchesOnlyThroughUnset reports a Matches result that no set dimension
// supports: the employee is in scope only because some dimension is unset.
func (d RecoveryDeclaration) MatchesOnlyThroughUnset(s Scope) bool {
	if d.AppliesToAll || !d.Matches(s) {
		return false
	}
	return !equal(d.DepartmentID, s.DepartmentID) &&
		!equal(d.SegmentID, s.SegmentID) &&
		!equal(d.CenterID, s.CenterID)
}

func dimensionMatches(declared, actual *string) bool {
	if declared == nil {
		return true
	}
	return equal(declared, actual)
}

func equal(declared, actual *string) bool {
	return declared != nil && actual != nil && *declared == *actual
}

