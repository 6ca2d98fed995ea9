package domain

import "fmt"

// Role is the closed set of user roles. Compare variants, never raw ids;
// the numeric id only exists for storage and transport.
type Role uint8

const (
	roleUnknown Role = iota
	RoleAdmin
	RoleMember
)

var roleIDs = map[Role]int{
	RoleAdmin:  1,
	RoleMember: 2,
}

var roleNames = map[Role]string{
	RoleAdmin:  "ADMIN",
	RoleMember: "MEMBER",
}

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleMember}

// ID returns the stable numeric identifier of r.
func (r Role) ID() int { return roleIDs[r] }

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// IsAdmin reports whether r is the ADMIN role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// RoleRegistry resolves numeric role ids into roles.
type RoleRegistry struct {
	byID map[int]Role
}

// DefaultRoleRegistry knows every role in Roles.
var DefaultRoleRegistry = NewRoleRegistry(Roles...)

// NewRoleRegistry builds a registry for the given roles.
func NewRoleRegistry(roles ...Role) *RoleRegistry {
	byID := make(map[int]Role, len(roles))
	for _, r := range roles {
		byID[r.ID()] = r
	}
	return &RoleRegistry{byID: byID}
}

// Lookup returns the role with the given id, or ErrNotFoundRole.
func (rr *RoleRegistry) Lookup(id int) (Role, error) {
	r, ok := rr.byID[id]
	if !ok {
		return roleUnknown, ErrNotFoundRole
	}
	return r, nil
}

// IsValid reports whether id names a known role.
func (rr *RoleRegistry) IsValid(id int) bool {
	_, ok := rr.byID[id]
	return ok
}

// RoleFromID decodes a stored role id. An unknown id is a data error, not a
// caller mistake, and is reported as UnexpectedError.
func RoleFromID(id int) (Role, error) {
	r, err := DefaultRoleRegistry.Lookup(id)
	if err != nil {
		return roleUnknown, WrapError(UnexpectedError, fmt.Errorf("unknown role id %d", id))
	}
	return r, nil
}
