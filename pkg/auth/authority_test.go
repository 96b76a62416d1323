package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetSkoocKlim/storefront/pkg/models"
)

var testSecret = []byte("test-signing-secret")

// fakeUserSource serves users from a map keyed by username.
type fakeUserSource struct {
	users map[string]*models.User
}

func (f *fakeUserSource) ByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := BcryptHasher{}.Hash([]byte(password))
	require.NoError(t, err)
	return &models.User{
		ID:             42,
		Username:       "ann",
		HashedPassword: string(hash),
		IsActive:       true,
		IsSupplier:     true,
		IsCustomer:     false,
	}
}

func newTestAuthority(users ...*models.User) *Authority {
	src := &fakeUserSource{users: make(map[string]*models.User)}
	for _, u := range users {
		src.users[u.Username] = u
	}
	return NewAuthority(src, testSecret, NewMemoryRevocationList())
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	user := testUser(t, "s3cret-pass")
	authority := newTestAuthority(user)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := authority.Authenticate(ctx, "ann", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := authority.Authenticate(ctx, "nobody", "s3cret-pass")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authority.Authenticate(ctx, "ann", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := testUser(t, "s3cret-pass")
		inactive.Username = "gone"
		inactive.IsActive = false
		authority := newTestAuthority(inactive)

		_, err := authority.Authenticate(ctx, "gone", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	user := testUser(t, "pw")
	authority := newTestAuthority(user)

	token, err := authority.IssueToken(user, time.Minute)
	require.NoError(t, err)

	claims, err := authority.ResolveCaller(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ann", claims.Username())
	assert.False(t, claims.IsAdmin)
	assert.True(t, claims.IsSupplier)
	assert.False(t, claims.IsCustomer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestResolveCaller_Expired(t *testing.T) {
	user := testUser(t, "pw")
	authority := newTestAuthority(user)

	token, err := authority.IssueToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = authority.ResolveCaller(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResolveCaller_BadSignature(t *testing.T) {
	user := testUser(t, "pw")
	authority := newTestAuthority(user)

	token, err := authority.IssueToken(user, time.Minute)
	require.NoError(t, err)

	t.Run("corrupted token", func(t *testing.T) {
		_, err := authority.ResolveCaller(context.Background(), token+"x")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthority(&fakeUserSource{}, []byte("another-secret"), nil)
		_, err := other.ResolveCaller(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := authority.ResolveCaller(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestResolveCaller_MissingExpiry(t *testing.T) {
	// A structurally valid, correctly signed token whose claims omit exp.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "ann",
		"user_id": 42,
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	authority := newTestAuthority()
	_, err = authority.ResolveCaller(context.Background(), signed)
	assert.ErrorIs(t, err, ErrMalformedClaims)
}

func TestResolveCaller_MissingIdentity(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no subject", jwt.MapClaims{"user_id": 42, "exp": exp}},
		{"no user id", jwt.MapClaims{"sub": "ann", "exp": exp}},
	}

	authority := newTestAuthority()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims)
			signed, err := token.SignedString(testSecret)
			require.NoError(t, err)

			_, err = authority.ResolveCaller(context.Background(), signed)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	user := testUser(t, "pw")
	authority := newTestAuthority(user)

	token, err := authority.IssueToken(user, time.Minute)
	require.NoError(t, err)

	// Valid before revocation.
	_, err = authority.ResolveCaller(ctx, token)
	require.NoError(t, err)

	require.NoError(t, authority.Revoke(ctx, token))

	_, err = authority.ResolveCaller(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// A second token for the same user is unaffected.
	fresh, err := authority.IssueToken(user, time.Minute)
	require.NoError(t, err)
	_, err = authority.ResolveCaller(ctx, fresh)
	assert.NoError(t, err)
}

func TestRevoke_NoList(t *testing.T) {
	user := testUser(t, "pw")
	authority := NewAuthority(&fakeUserSource{}, testSecret, nil)

	token, err := authority.IssueToken(user, time.Minute)
	require.NoError(t, err)

	err = authority.Revoke(context.Background(), token)
	assert.Error(t, err)
}

func TestMemoryRevocationList_Expiry(t *testing.T) {
	list := NewMemoryRevocationList()
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "soon-gone", 10*time.Millisecond))
	revoked, err := list.IsRevoked(ctx, "soon-gone")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(20 * time.Millisecond)
	revoked, err = list.IsRevoked(ctx, "soon-gone")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{}

	hash, err := hasher.Hash([]byte("hello"))
	require.NoError(t, err)

	assert.NoError(t, hasher.Compare(hash, []byte("hello")))
	assert.Error(t, hasher.Compare(hash, []byte("other")))
}

func TestAuthenticate_SourceError(t *testing.T) {
	boom := errors.New("connection refused")
	authority := NewAuthority(errorSource{err: boom}, testSecret, nil)

	_, err := authority.Authenticate(context.Background(), "ann", "pw")
	assert.ErrorIs(t, err, boom)
}

type errorSource struct{ err error }

func (s errorSource) ByUsername(context.Context, string) (*models.User, error) {
	return nil, s.err
}
