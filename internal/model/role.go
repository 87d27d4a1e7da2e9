package model

// Role is the writable access tier assigned to a profile.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the writable roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// CallerRole is the three-valued role reported for the current caller.
// Guest means the caller is authenticated but has no profile yet.
type CallerRole string

const (
	CallerRoleAdmin CallerRole = "admin"
	CallerRoleUser  CallerRole = "user"
	CallerRoleGuest CallerRole = "guest"
)
