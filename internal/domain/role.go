package domain

// Role enumerates the portal user roles.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAnalista    Role = "analista"
	RoleColaborador Role = "colaborador"
)

// Valid reports whether the role is one the portal recognizes.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalista, RoleColaborador:
		return true
	}
	return false
}

// HomePath returns the landing route for the role. Unknown roles fall back
// to the collaborator home.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleAnalista:
		return "/analyst/dashboard"
	default:
		return "/chat"
	}
}
