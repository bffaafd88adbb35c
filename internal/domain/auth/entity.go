package auth

type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanReviewAttendance reports whether the role may look at other employees' days.
func (r Role) CanReviewAttendance() bool {
	return r == RoleOwner || r == RoleManager
}

// Claims is the part of an access token the attendance API relies on.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       Role
}
