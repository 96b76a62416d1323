// Package auth implements the token authority: password authentication
// and issuing/validating stateless HS256 bearer tokens carrying identity
// and role claims.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/NetSkoocKlim/storefront/pkg/models"
)

var (
	// ErrUserNotFound is returned when no user has the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on password mismatch or when the
	// account is inactive.
	ErrInvalidCredentials = errors.New("invalid authentication credentials")

	// ErrTokenInvalid is returned when the signature fails to verify or a
	// required identity claim is absent.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenRevoked is returned when the token id is on the revocation list.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrMalformedClaims is returned when the expiry claim is missing.
	ErrMalformedClaims = errors.New("token has no expiry claim")
)

// Claims is the typed identity and authorization context embedded in a
// token. Subject carries the username; the role flags mirror the user row
// at issue time.
type Claims struct {
	UserID     int64 `json:"user_id"`
	IsAdmin    bool  `json:"is_admin"`
	IsSupplier bool  `json:"is_supplier"`
	IsCustomer bool  `json:"is_customer"`
	jwt.RegisteredClaims
}

// Username returns the subject claim.
func (c *Claims) Username() string { return c.Subject }

// UserSource resolves usernames to user rows.
type UserSource interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authority authenticates users and issues/validates bearer tokens. The
// signing secret is supplied by the caller, never embedded. A nil
// revocation list disables revocation checks.
type Authority struct {
	users   UserSource
	hasher  PasswordHasher
	secret  []byte
	revoked RevocationList
}

// NewAuthority creates an Authority with a bcrypt hasher.
func NewAuthority(users UserSource, secret []byte, revoked RevocationList) *Authority {
	return &Authority{
		users:   users,
		hasher:  BcryptHasher{},
		secret:  secret,
		revoked: revoked,
	}
}

// Authenticate looks the user up by username and verifies the password.
// Inactive accounts and password mismatches both fail with
// ErrInvalidCredentials; an unknown username fails with ErrUserNotFound.
func (a *Authority) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := a.hasher.Compare([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a token for the user with the given time to live. The
// claims are signed, not encrypted: anyone holding the token can read them.
func (a *Authority) IssueToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     user.ID,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		IsCustomer: user.IsCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ResolveCaller verifies the token and returns its claims as the caller's
// identity for the rest of the request. Failures are distinguished: bad
// signature or missing identity claims (ErrTokenInvalid), missing expiry
// (ErrMalformedClaims), past expiry (ErrTokenExpired), revoked id
// (ErrTokenRevoked).
func (a *Authority) ResolveCaller(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, ErrMalformedClaims
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	if a.revoked != nil && claims.ID != "" {
		revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke validates the token and records its id on the revocation list
// until the token's natural expiry.
func (a *Authority) Revoke(ctx context.Context, tokenString string) error {
	if a.revoked == nil {
		return errors.New("no revocation list configured")
	}

	claims, err := a.ResolveCaller(ctx, tokenString)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return ErrTokenInvalid
	}

	return a.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
