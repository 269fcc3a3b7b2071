package models

// UserRole is the role claim carried by access tokens. Accounts themselves
// live in the identity service; this service only checks the claim.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RolePlayer:
		return true
	default:
		return false
	}
}
