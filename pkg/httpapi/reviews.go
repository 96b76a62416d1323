package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NetSkoocKlim/storefront/pkg/repository"
)

type reviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Grade     int    `json:"grade" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// allReviews lists every active review/rating pair.
func (api *API) allReviews(c *fiber.Ctx) error {
	reviews, err := api.reviews.ListWithRatings(c.Context(),
		repository.Eq("reviews.is_active", true),
		repository.Eq("ratings.is_active", true))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(reviews)
}

// productReviews lists the active review/rating pairs for ?product_id=.
func (api *API) productReviews(c *fiber.Ctx) error {
	id, err := queryID(c, "product_id")
	if err != nil {
		return err
	}

	reviews, err := api.reviews.ActiveForProduct(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(reviews)
}

// addReview records the caller's review and grade for a product. Any
// authenticated user may post one.
func (api *API) addReview(c *fiber.Ctx) error {
	claims := callerClaims(c)
	if claims == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	var req reviewRequest
	if err := api.parseBody(c, &req); err != nil {
		return err
	}

	product, err := api.products.ByID(c.Context(), req.ProductID)
	if err != nil {
		return httpError(err)
	}
	if product == nil {
		return fiber.NewError(fiber.StatusNotFound, "There is no product found")
	}

	_, err = api.reviews.AddReview(c.Context(), claims.UserID, req.ProductID, req.Grade, req.Comment, time.Now().UTC())
	if err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status_code": fiber.StatusCreated,
		"transaction": "Successful",
	})
}

// deleteReview soft-deletes the review named by ?review_id= together with
// its rating. Admin only.
func (api *API) deleteReview(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	id, err := queryID(c, "review_id")
	if err != nil {
		return err
	}

	review, err := api.reviews.ByID(c.Context(), id, repository.Eq("is_active", true))
	if err != nil {
		return httpError(err)
	}
	if review == nil {
		return fiber.NewError(fiber.StatusNotFound, "There is no review found")
	}

	if err := api.reviews.DeleteReview(c.Context(), review.ID, review.RatingID); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"transaction": "Review delete is successful",
	})
}
