package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID *int64 `json:"parent_id"`
}

// allCategories lists every active category.
func (api *API) allCategories(c *fiber.Ctx) error {
	categories, err := api.categories.AllActive(c.Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(categories)
}

// createCategory inserts a category. Admin only.
func (api *API) createCategory(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	var req categoryRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	if _, err := api.categories.Create(c.Context(), req.Name, req.ParentID); err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status_code": fiber.StatusCreated,
		"transaction": "Successful",
	})
}

// updateCategory renames/reparents a category. Admin only.
func (api *API) updateCategory(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	id, err := queryID(c, "category_id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	category, err := api.categories.ByID(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	if category == nil {
		return fiber.NewError(fiber.StatusNotFound, "There is no category found")
	}

	if err := api.categories.Update(c.Context(), id, req.Name, req.ParentID); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"transaction": "Category update is successful",
	})
}

// deleteCategory soft-deletes a category. Admin only.
func (api *API) deleteCategory(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	id, err := queryID(c, "category_id")
	if err != nil {
		return err
	}

	category, err := api.categories.ByID(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	if category == nil {
		return fiber.NewError(fiber.StatusNotFound, "There is no category found")
	}

	if err := api.categories.Deactivate(c.Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"transaction": "Category delete is successful",
	})
}
