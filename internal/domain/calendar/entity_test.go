package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRecoveryDeclaration_Matches(t *testing.T) {
	employee := Scope{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("seg-1"), CenterID: strPtr("ctr-1")}

	cases := []struct {
		name string
		decl RecoveryDeclaration
		want bool
	}{
		{"applies to all", RecoveryDeclaration{AppliesToAll: true, DepartmentID: strPtr("other")}, true},
		{"same department", RecoveryDeclaration{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("x"), CenterID: strPtr("y")}, true},
		{"same center only", RecoveryDeclaration{DepartmentID: strPtr("x"), SegmentID: strPtr("y"), CenterID: strPtr("ctr-1")}, true},
		{"one dimension unset", RecoveryDeclaration{DepartmentID: strPtr("x"), SegmentID: nil, CenterID: strPtr("y")}, true},
		{"no dimension matches", RecoveryDeclaration{DepartmentID: strPtr("x"), SegmentID: strPtr("y"), CenterID: strPtr("z")}, false},
		{"unscoped matches everyone", RecoveryDeclaration{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.decl.Matches(employee))
		})
	}
}

func TestRecoveryDeclaration_MatchesEmployeeWithoutScope(t *testing.T) {
	decl := RecoveryDeclaration{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("seg-1"), CenterID: strPtr("ctr-1")}
	assert.False(t, decl.Matches(Scope{}))
}

func TestRecoveryDeclaration_MatchesStrict(t *testing.T) {
	employee := Scope{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("seg-1"), CenterID: strPtr("ctr-1")}

	cases := []struct {
		name string
		decl RecoveryDeclaration
		want bool
	}{
		{"applies to all", RecoveryDeclaration{AppliesToAll: true, DepartmentID: strPtr("other")}, true},
		{"department only, same", RecoveryDeclaration{DepartmentID: strPtr("dep-1")}, true},
		{"department only, other", RecoveryDeclaration{DepartmentID: strPtr("dep-2")}, false},
		{"all set, all equal", RecoveryDeclaration{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("seg-1"), CenterID: strPtr("ctr-1")}, true},
		{"one set dimension differs", RecoveryDeclaration{DepartmentID: strPtr("dep-1"), CenterID: strPtr("ctr-2")}, false},
		{"nothing set", RecoveryDeclaration{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.decl.MatchesStrict(employee))
		})
	}

	assert.False(t, RecoveryDeclaration{DepartmentID: strPtr("dep-1")}.MatchesStrict(Scope{}))
}

func TestRecoveryDeclaration_MatchesOnlyThroughUnset(t *testing.T) {
	employee := Scope{DepartmentID: strPtr("dep-2"), SegmentID: strPtr("seg-1"), CenterID: strPtr("ctr-1")}

	assert.True(t, RecoveryDeclaration{DepartmentID: strPtr("dep-1")}.MatchesOnlyThroughUnset(employee))
	assert.True(t, RecoveryDeclaration{}.MatchesOnlyThroughUnset(employee))
	assert.False(t, RecoveryDeclaration{DepartmentID: strPtr("dep-2")}.MatchesOnlyThroughUnset(employee))
	assert.False(t, RecoveryDeclaration{DepartmentID: strPtr("dep-1"), SegmentID: strPtr("seg-1")}.MatchesOnlyThroughUnset(employee))
	assert.False(t, RecoveryDeclaration{AppliesToAll: true}.MatchesOnlyThroughUnset(employee))
	// no match at all
	assert.False(t, RecoveryDeclaration{DepartmentID: strPtr("x"), SegmentID: strPtr("y"), CenterID: strPtr("z")}.MatchesOnlyThroughUnset(employee))
}
