package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NetSkoocKlim/storefront/pkg/auth"
)

const (
	claimsKey   = "claims"
	rawTokenKey = "raw_token"
)

// requireAuth resolves the bearer token and stores the caller's claims on
// the request context. Protected handlers run after it.
func (api *API) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	claims, err := api.authority.ResolveCaller(c.Context(), token)
	if err != nil {
		return httpError(err)
	}

	c.Locals(claimsKey, claims)
	c.Locals(rawTokenKey, token)
	return c.Next()
}

// callerClaims returns the claims requireAuth stored for this request.
func callerClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

// requireAdmin rejects callers without the admin flag.
func requireAdmin(c *fiber.Ctx) (*auth.Claims, error) {
	claims := callerClaims(c)
	if claims == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	if !claims.IsAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "admin role required")
	}
	return claims, nil
}

// requireSupplierOrAdmin rejects callers holding neither role.
func requireSupplierOrAdmin(c *fiber.Ctx) (*auth.Claims, error) {
	claims := callerClaims(c)
	if claims == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	if !claims.IsAdmin && !claims.IsSupplier {
		return nil, fiber.NewError(fiber.StatusForbidden, "admin or supplier role required")
	}
	return claims, nil
}
