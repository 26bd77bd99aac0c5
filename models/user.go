package models

// Roles accepted in the `users.role` column.
const (
	RoleAdmin      = "admin"
	RoleOfficer    = "officer"
	RoleSupervisor = "supervisor"
)

// User represents an account row.
// It maps to the `users` table in SQLite.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Status       string `db:"status" json:"status"`
}

// ValidRole reports whether role is one the schema knows about.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOfficer, RoleSupervisor:
		return true
	}
	return false
}
