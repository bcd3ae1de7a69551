package service

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/domain"
)

// requiredRoles maps each role-gated operation to the roles allowed to call
// it. Every admin operation consults this table before touching business
// logic; there are no inline role conditionals in the handlers.
var requiredRoles = map[string][]domain.Role{
	"users.list":   {domain.RoleAdmin, domain.RoleSuperAdmin},
	"users.get":    {domain.RoleAdmin, domain.RoleSuperAdmin},
	"users.update": {domain.RoleAdmin, domain.RoleSuperAdmin},
	"users.delete": {domain.RoleAdmin, domain.RoleSuperAdmin},
}

func authorize(op string, role domain.Role) error {
	for _, allowed := range requiredRoles[op] {
		if role == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s requires an administrator role", domain.ErrForbidden, op)
}

// Upload is an in-memory file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateSelfInput carries the optional fields of a profile self-update.
// CurrentPassword and NewPassword must be supplied together or not at all.
type UpdateSelfInput struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
	Image           *Upload
}

// UpdateUserInput carries the optional fields of an administrative update.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  domain.Role
}

// UserService implements profile self-service and administrative user
// management on top of the user repository.
type UserService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	media  *MediaService
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenManager, media *MediaService) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens, media: media}
}

// GetSelf returns the caller's own user record.
func (s *UserService) GetSelf(ctx context.Context, callerID string) (*domain.User, error) {
	return s.users.GetByID(ctx, callerID)
}

// UpdateSelf applies a profile self-update. If the password was rotated, a
// fresh session token is returned (non-empty second return value) and all
// previously issued tokens become invalid.
func (s *UserService) UpdateSelf(ctx context.Context, callerID string, in UpdateSelfInput) (*domain.User, string, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, "", err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}

	rotated := false
	if in.CurrentPassword != "" || in.NewPassword != "" {
		if in.CurrentPassword == "" || in.NewPassword == "" {
			return nil, "", fmt.Errorf("%w: current and new password must be supplied together", domain.ErrInvalidInput)
		}
		if len(in.NewPassword) < minPasswordLength {
			return nil, "", fmt.Errorf("%w: new password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
		}
		if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
			return nil, "", domain.ErrUnauthenticated
		}

		hash, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return nil, "", err
		}
		user.PasswordHash = hash
		user.TokenEpoch++
		rotated = true
	}

	if in.Image != nil {
		url, err := s.media.Store(ctx, *in.Image, "profiles")
		if err != nil {
			return nil, "", err
		}
		user.ProfileImageURL = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	token := ""
	if rotated {
		token, err = s.tokens.Issue(user)
		if err != nil {
			return nil, "", fmt.Errorf("issue token: %w", err)
		}
	}

	return user, token, nil
}

// List returns all users. Admin or super_admin only.
func (s *UserService) List(ctx context.Context, callerRole domain.Role) ([]domain.User, error) {
	if err := authorize("users.list", callerRole); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// GetByID returns a single user by ID. Admin or super_admin only.
func (s *UserService) GetByID(ctx context.Context, callerRole domain.Role, targetID string) (*domain.User, error) {
	if err := authorize("users.get", callerRole); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, targetID)
}

// UpdateByAdmin applies an administrative update to the target user.
// Administrators cannot change their own role through this path, and the
// assignable role set excludes super_admin.
func (s *UserService) UpdateByAdmin(ctx context.Context, callerID string, callerRole domain.Role, targetID string, in UpdateUserInput) (*domain.User, error) {
	if err := authorize("users.update", callerRole); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if in.Role != "" {
		if callerID == targetID && in.Role != user.Role {
			return nil, fmt.Errorf("%w: administrators cannot change their own role", domain.ErrInvalidInput)
		}
		if !domain.AdminAssignableRoles[in.Role] {
			return nil, fmt.Errorf("%w: role %q is not assignable", domain.ErrInvalidInput, in.Role)
		}
		user.Role = in.Role
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the target user. A plain admin cannot delete another admin
// or a super_admin, and nobody can delete themselves through this path.
func (s *UserService) Delete(ctx context.Context, callerID string, callerRole domain.Role, targetID string) error {
	if err := authorize("users.delete", callerRole); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if callerRole == domain.RoleAdmin && user.Role.IsAdmin() {
		return fmt.Errorf("%w: only a super_admin can delete an administrator", domain.ErrInvalidInput)
	}
	if callerID == targetID {
		return fmt.Errorf("%w: accounts cannot delete themselves", domain.ErrInvalidInput)
	}

	return s.users.Delete(ctx, targetID)
}
