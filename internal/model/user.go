package model

import "time"

// Role values stored in users.role.  Public registration always produces a
// customer; staff accounts are created by administrators.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// RoleOrder is the display ordering of roles: admin before employee before
// customer.  It is the single place this ordering is defined; callers that
// need role-ordered output pass it as a comparator or a FIELD() list instead
// of keeping their own lookup table.
var RoleOrder = []string{RoleAdmin, RoleEmployee, RoleCustomer}

// RoleRank returns the position of a role within RoleOrder.  Unknown roles
// sort last.
func RoleRank(role string) int {
	for i, r := range RoleOrder {
		if r == role {
			return i
		}
	}
	return len(RoleOrder)
}

// ValidRole reports whether the given string is a known role value.
func ValidRole(role string) bool {
	return RoleRank(role) < len(RoleOrder)
}

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column.  The json tags are omitted
// here because these structs are used by the repository layer; handlers and
// the presenter define separate response types with appropriate tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name.
//  Username     – unique login handle; generated from FullName when absent.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.  Never leaves the repository layer.
//  Role         – one of RoleAdmin, RoleEmployee, RoleCustomer.
//  AvatarPath   – stored avatar path, or an "initials:XX" placeholder.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.user_id
	FullName     string    // users.full_name
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	AvatarPath   string    // users.avatar_path
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and carries expiry and revocation metadata.  The
// plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
