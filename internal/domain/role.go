package domain

// Role is the closed set of platform roles. Guest is the absence of a
// session; everything else comes from the backend's user record. Role
// branching on the client is presentation only, the backend enforces
// authorization.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleUser      Role = "user"
	RoleWaiter    Role = "waiter"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleOwner     Role = "owner"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGuest, RoleUser, RoleWaiter, RoleAdmin, RoleModerator, RoleOwner:
		return Role(s), true
	}
	return "", false
}

// Staff reports whether the role sees the waiter/admin surfaces.
func (r Role) Staff() bool {
	switch r {
	case RoleWaiter, RoleAdmin, RoleModerator, RoleOwner:
		return true
	case RoleGuest, RoleUser:
		return false
	}
	return false
}
