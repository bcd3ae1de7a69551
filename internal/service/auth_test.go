package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/domain"
	"github.com/campushub/campushub/internal/repository/sqlite"
	"github.com/campushub/campushub/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

type fixture struct {
	db     *sqlite.DB
	auth   *service.AuthService
	users  *service.UserService
	tokens *service.TokenManager
	repo   domain.UserRepository
}

// stubGeo returns a fixed location or error regardless of input.
type stubGeo struct {
	loc *domain.Location
	err error
}

func (g *stubGeo) Resolve(ctx context.Context, ip string) (*domain.Location, error) {
	return g.loc, g.err
}

func newFixture(t *testing.T, geo domain.GeoResolver) *fixture {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })

	// Cost 4 keeps bcrypt fast in tests.
	hasher := service.NewPasswordHasher(4)
	tokens := service.NewTokenManager(testJWTSecret)
	media := service.NewMediaService(db.Files(), "")

	return &fixture{
		db:     db,
		auth:   service.NewAuthService(db.Users(), hasher, tokens, geo),
		users:  service.NewUserService(db.Users(), hasher, tokens, media),
		tokens: tokens,
		repo:   db.Users(),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, "Abebe", "abebe@example.com", "secret1", domain.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "abebe@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Nil(t, user.LastLoginAt)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     domain.Role
	}{
		{"empty name", "", "a@b.com", "secret1", domain.RoleUser},
		{"empty email", "A", "", "secret1", domain.RoleUser},
		{"empty password", "A", "a@b.com", "", domain.RoleUser},
		{"bad email shape", "A", "not-an-email", "secret1", domain.RoleUser},
		{"no domain dot", "A", "a@b", "secret1", domain.RoleUser},
		{"short password", "A", "a@b.com", "12345", domain.RoleUser},
		{"unknown role", "A", "a@b.com", "secret1", domain.Role("overlord")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.auth.Register(ctx, tc.userName, tc.email, tc.password, tc.role)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthService_Register_AllRolesAccepted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	roles := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleUser, domain.RolePaymentViewer}
	for i, role := range roles {
		user, _, err := f.auth.Register(ctx, "U", string(role)+"@example.com", "secret1", role)
		require.NoError(t, err, "role %d", i)
		assert.Equal(t, role, user.Role)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, "A", "dup@example.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = f.auth.Register(ctx, "B", "dup@example.com", "secret2", domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, "A", "a@b.com", "right-password", domain.RoleUser)
	require.NoError(t, err)

	user, token, err := f.auth.Login(ctx, "a@b.com", "right-password", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)

	identity, err := f.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestAuthService_Login_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, "A", "a@b.com", "right-password", domain.RoleUser)
	require.NoError(t, err)

	_, _, errWrong := f.auth.Login(ctx, "a@b.com", "wrong-password", "")
	_, _, errUnknown := f.auth.Login(ctx, "nouser@b.com", "whatever", "")

	assert.ErrorIs(t, errWrong, domain.ErrUnauthenticated)
	assert.ErrorIs(t, errUnknown, domain.ErrUnauthenticated)
	// Identical error shape for both failure modes.
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthService_Login_RecordsLocation(t *testing.T) {
	geo := &stubGeo{loc: &domain.Location{City: "Addis Ababa", Country: "Ethiopia"}}
	f := newFixture(t, geo)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	user, _, err := f.auth.Login(ctx, "a@b.com", "secret1", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", user.LastLoginIP)
	require.NotNil(t, user.LastLoginLocation)
	assert.Equal(t, "Addis Ababa, Ethiopia", *user.LastLoginLocation)
}

func TestAuthService_Login_GeoFailureDoesNotFailLogin(t *testing.T) {
	geo := &stubGeo{err: errors.New("upstream down")}
	f := newFixture(t, geo)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	user, token, err := f.auth.Login(ctx, "a@b.com", "secret1", "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Nil(t, user.LastLoginLocation)
}

func TestAuthService_ValidateSession_Garbage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := f.auth.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "token %q", token)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, _, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	// Hand-craft an assertion issued two hours ago with the same secret.
	expired := signTestToken(t, user, time.Now().Add(-2*time.Hour))
	_, err = f.auth.ValidateSession(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession_WrongKey(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, _, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	other := service.NewTokenManager("another-secret-key-entirely-0123456789")
	forged, err := other.Issue(user)
	require.NoError(t, err)

	_, err = f.auth.ValidateSession(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession_DeletedUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, f.repo.Delete(ctx, user.ID))

	_, err = f.auth.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession_FreshRole(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	// Promote after the token was issued.
	user.Role = domain.RoleAdmin
	require.NoError(t, f.repo.Update(ctx, user))

	identity, err := f.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, identity.Role, "validation must reflect the current role, not the issued one")
}

func TestAuthService_ValidateSession_StaleEpoch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, "A", "a@b.com", "secret1", domain.RoleUser)
	require.NoError(t, err)

	user.TokenEpoch++
	require.NoError(t, f.repo.Update(ctx, user))

	_, err = f.auth.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// signTestToken issues a token with a chosen issue time, bypassing
// TokenManager's clock.
func signTestToken(t *testing.T, user *domain.User, issuedAt time.Time) string {
	t.Helper()
	claims := service.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Email:      user.Email,
		Role:       string(user.Role),
		TokenEpoch: user.TokenEpoch,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
