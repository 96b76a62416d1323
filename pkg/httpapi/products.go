package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/stores"
)

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  int64   `json:"category" validate:"required"`
}

func (r productRequest) params() stores.ProductParams {
	return stores.ProductParams{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
	}
}

// allProducts lists every active product with stock on hand.
func (api *API) allProducts(c *fiber.Ctx) error {
	products, err := api.products.Available(c.Context())
	if err != nil {
		return httpError(err)
	}
	if len(products) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Products not found")
	}
	return c.JSON(products)
}

// createProduct inserts a product owned by the caller. Admin or supplier.
func (api *API) createProduct(c *fiber.Ctx) error {
	claims, err := requireSupplierOrAdmin(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	if _, err := api.products.Create(c.Context(), req.params(), claims.UserID); err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status_code": fiber.StatusCreated,
		"transaction": "Successful",
	})
}

// productsByCategory lists available products in the category and its
// direct subcategories.
func (api *API) productsByCategory(c *fiber.Ctx) error {
	category, err := api.categories.BySlug(c.Context(), c.Params("category_slug"))
	if err != nil {
		return httpError(err)
	}
	if category == nil {
		return fiber.NewError(fiber.StatusNotFound, "Category not found")
	}

	subcategories, err := api.categories.Subcategories(c.Context(), category.ID)
	if err != nil {
		return httpError(err)
	}

	ids := make([]int64, 0, len(subcategories)+1)
	ids = append(ids, category.ID)
	for _, sub := range subcategories {
		ids = append(ids, sub.ID)
	}

	products, err := api.products.AvailableInCategories(c.Context(), ids)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(products)
}

// productDetail returns a single product by slug.
func (api *API) productDetail(c *fiber.Ctx) error {
	product, err := api.findProduct(c)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// updateProduct replaces a product's fields. Admins may edit any product,
// suppliers only their own.
func (api *API) updateProduct(c *fiber.Ctx) error {
	claims, err := requireSupplierOrAdmin(c)
	if err != nil {
		return err
	}

	product, err := api.findProduct(c)
	if err != nil {
		return err
	}
	if !claims.IsAdmin && product.SupplierID != claims.UserID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to use this method")
	}

	var req productRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	if err := api.products.Update(c.Context(), product.ID, req.params()); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"transaction": "Product update is successful",
	})
}

// deleteProduct soft-deletes a product identified by ?product_slug=.
// Admins may delete any product, suppliers only their own.
func (api *API) deleteProduct(c *fiber.Ctx) error {
	claims, err := requireSupplierOrAdmin(c)
	if err != nil {
		return err
	}

	slugParam := c.Query("product_slug")
	if slugParam == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product_slug must be provided")
	}

	product, err := api.products.BySlug(c.Context(), slugParam)
	if err != nil {
		return httpError(err)
	}
	if product == nil {
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	}
	if !claims.IsAdmin && product.SupplierID != claims.UserID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to use this method")
	}

	if err := api.products.Deactivate(c.Context(), product.ID); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"transaction": "Product delete is successful",
	})
}

// findProduct loads the product named by the :product_slug route parameter.
func (api *API) findProduct(c *fiber.Ctx) (*models.Product, error) {
	product, err := api.products.BySlug(c.Context(), c.Params("product_slug"))
	if err != nil {
		return nil, httpError(err)
	}
	if product == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "There is no product found")
	}
	return product, nil
}
