package auth

type Role string

const (
	RoleAdmin Role = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	Subject string
	Role    Role
}
