package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// listUsers returns every account. Temporary inspection endpoint.
func (api *API) listUsers(c *fiber.Ctx) error {
	users, err := api.users.All(c.Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(users)
}

// toggleSupplier grants or removes the supplier role on ?user_id=.
// Admin only.
func (api *API) toggleSupplier(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	id, err := queryID(c, "user_id")
	if err != nil {
		return err
	}

	nowSupplier, err := api.users.ToggleSupplier(c.Context(), id)
	if err != nil {
		return httpError(err)
	}

	verb := "revoked from"
	if nowSupplier {
		verb = "granted to"
	}
	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"detail":      fmt.Sprintf("supplier role %s user %d", verb, id),
	})
}

// deleteUser flips the active flag on ?user_id= (soft delete / restore).
// Admin only; administrator accounts are refused with 409.
func (api *API) deleteUser(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	id, err := queryID(c, "user_id")
	if err != nil {
		return err
	}

	nowActive, err := api.users.ToggleActive(c.Context(), id)
	if err != nil {
		return httpError(err)
	}

	detail := "user is deleted"
	if nowActive {
		detail = "user is restored"
	}
	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"detail":      detail,
	})
}
