package domain

import (
	"context"
	"time"
)

// Role classifies what a user is allowed to do. The set is closed: any
// value outside the four constants below is rejected before it can be
// persisted.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleAdmin         Role = "admin"
	RoleUser          Role = "user"
	RolePaymentViewer Role = "payment_viewer"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RolePaymentViewer:
		return true
	}
	return false
}

// IsAdmin reports whether r grants access to the administrative user
// management operations.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// AdminAssignableRoles is the set of roles an administrator may assign to
// another user. super_admin is deliberately absent: nobody can be promoted
// to super_admin through the admin update path.
var AdminAssignableRoles = map[Role]bool{
	RoleAdmin:         true,
	RoleUser:          true,
	RolePaymentViewer: true,
}

// User represents a registered account.
//
// TokenEpoch is embedded in every session token at issuance and bumped when
// the password is rotated, so outstanding tokens die with the old password.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              Role
	ProfileImageURL   string
	TokenEpoch        int64
	LastLoginAt       *time.Time
	LastLoginIP       string
	LastLoginLocation *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Identity is the authenticated caller attached to a request after session
// validation. Role is always the user's current role read from the store,
// never the one embedded in the token.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
}
