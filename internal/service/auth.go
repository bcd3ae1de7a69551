package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/domain"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration, login, and session validation.
type AuthService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	geo    domain.GeoResolver
}

// NewAuthService creates a new AuthService. geo may be nil, in which case
// login location is always recorded as unknown.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenManager, geo domain.GeoResolver) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, geo: geo}
}

// Register creates a new user account after validating inputs and returns
// the user together with a freshly issued session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if !emailPattern.MatchString(email) {
		return nil, "", fmt.Errorf("%w: malformed email address", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user and a signed session
// token. Unknown email and wrong password produce the same error so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password, remoteIP string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthenticated
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	user.LastLoginIP = remoteIP
	user.LastLoginLocation = s.resolveLocation(ctx, remoteIP)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// resolveLocation performs the best-effort geolocation lookup. Any failure
// degrades to nil ("unknown"); it never affects the outcome of a login.
func (s *AuthService) resolveLocation(ctx context.Context, remoteIP string) *string {
	if s.geo == nil || remoteIP == "" {
		return nil
	}

	loc, err := s.geo.Resolve(ctx, remoteIP)
	if err != nil || loc == nil {
		if err != nil {
			slog.Debug("geolocation lookup failed", "ip", remoteIP, "error", err)
		}
		return nil
	}

	str := loc.String()
	if str == "" {
		return nil
	}
	return &str
}

// ValidateSession verifies a session token and returns the caller identity.
// Only the subject and email are trusted from the signed payload; the role
// is re-read from the store so revocations and promotions made after token
// issuance take effect immediately. A token whose epoch no longer matches
// the stored value (password rotated since issuance) is rejected.
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if claims.TokenEpoch != user.TokenEpoch {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
