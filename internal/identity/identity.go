// Package identity defines the subject identity shared between the token,
// service, and api layers.
package identity

// Role is the authorization role carried in issued tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether the role grants administrative access.
// Privileged roles can never be self-assigned at registration.
func (r Role) Privileged() bool {
	return r == RoleAdmin
}

// Identity is the public-safe projection of an account: no password hash,
// no internal bookkeeping fields. Token issuance embeds these fields
// verbatim and never re-derives them.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
