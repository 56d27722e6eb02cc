package identity

// Role is the closed set of caller roles. Keeping it typed (instead of
// comparing raw request strings) keeps role dispatch exhaustive.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAesthetician Role = "aesthetician"
	RoleClient       Role = "client"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAesthetician, RoleClient:
		return Role(s), true
	}
	return "", false
}

// Actor is the resolved caller of a request.
type Actor struct {
	ID           uint
	Role         Role
	IsSuperAdmin bool
}

func (a Actor) IsAdmin() bool        { return a.Role == RoleAdmin }
func (a Actor) IsAesthetician() bool { return a.Role == RoleAesthetician }
func (a Actor) IsClient() bool       { return a.Role == RoleClient }

func (a Actor) IsSuper() bool { return a.Role == RoleAdmin && a.IsSuperAdmin }
