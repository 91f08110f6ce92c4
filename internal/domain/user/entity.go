package user

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleEmployee Role = "employee" // Regular employee
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Identity is the authenticated caller of an operation. Handlers build it from
// the verified token and pass it to every service call.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin checks if the caller is an administrator
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Can reports whether the caller's role grants p.
func (i Identity) Can(p Permission) bool {
	return HasPermission(i.Role, p)
}

// CanAccess reports whether the caller may read data owned by ownerID:
// admins read everything, everyone else only their own records.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

// Validate checks that the identity carries a subject and a known role.
func (i Identity) Validate() error {
	if i.UserID == "" || !i.Role.Valid() {
		return ErrInvalidIdentity
	}
	return nil
}

// Require returns nil when the caller is valid and holds p.
func (i Identity) Require(p Permission) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.Can(p) {
		if HasPermission(RoleAdmin, p) && !i.IsAdmin() {
			return ErrAdminPrivilegeRequired
		}
		return ErrInsufficientPermissions
	}
	return nil
}
