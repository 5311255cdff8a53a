package user

type Role string

const (
	RoleAdmin    Role = "admin"    // System administrator - full access
	RoleHR       Role = "hr"       // Runs sweeps, manages holidays, reviews corrections
	RoleManager  Role = "manager"  // Reviews corrections
	RoleEmployee Role = "employee" // Regular employee
	RoleKiosk    Role = "kiosk"    // Shared face-recognition terminal
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee, RoleKiosk:
		return true
	}
	return false
}

// Claims is the identity carried by a verified access token.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       Role
}
