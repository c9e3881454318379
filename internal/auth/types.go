package auth

// Account is the credential-bearing identity record. PasswordHash and
// PasswordSalt are always written as one unit and never serialized.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
	PasswordSalt []byte
	EmployeeID   string
	RoleID       string
	RoleName     string
}

// Summary is the externally visible projection of an Account. Credential
// material never leaves the package.
type Summary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	RoleName   string `json:"role_name"`
	EmployeeID string `json:"employee_id"`
}

// Summary returns the safe projection of the account.
func (a *Account) Summary() Summary {
	return Summary{
		ID:         a.ID,
		Username:   a.Username,
		RoleName:   a.RoleName,
		EmployeeID: a.EmployeeID,
	}
}

// Role is a named permission class attached to accounts.
type Role struct {
	ID   string
	Name string
}

// Default role names seeded at process start.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// DefaultRoles is the closed set of roles the service ships with.
var DefaultRoles = []string{RoleAdmin, RoleUser}
