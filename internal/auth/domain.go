package auth

// Roles understood by the engine. The credential list is fixed; there is no
// user management surface.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User is an entry in the fixed credential list.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

// Credential seeds one user at startup.
type Credential struct {
	ID       string
	Email    string
	Name     string
	Password string
	Role     string
}
