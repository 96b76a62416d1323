package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// register creates a new customer account.
func (api *API) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	hashed, err := api.hasher.Hash([]byte(req.Password))
	if err != nil {
		return err
	}

	if _, err := api.users.Register(c.Context(), req.FirstName, req.LastName, req.Username, req.Email, string(hashed)); err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status_code": fiber.StatusCreated,
		"transaction": "Successful",
	})
}

// login verifies the credentials and issues a bearer token.
func (api *API) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	user, err := api.authority.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	token, err := api.authority.IssueToken(user, api.tokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// logout revokes the presented token for the rest of its lifetime.
func (api *API) logout(c *fiber.Ctx) error {
	token, _ := c.Locals(rawTokenKey).(string)
	if err := api.authority.Revoke(c.Context(), token); err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// me returns the caller's claims.
func (api *API) me(c *fiber.Ctx) error {
	return c.JSON(callerClaims(c))
}
