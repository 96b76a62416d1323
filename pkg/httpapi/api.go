// Package httpapi wires the domain stores and token authority into HTTP
// endpoints. Handlers stay thin: they parse and validate input, enforce
// the role checks from the caller's claims, call one store method, and
// translate the result to a status code.
package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/NetSkoocKlim/storefront/pkg/auth"
	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/repository"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
	"github.com/NetSkoocKlim/storefront/pkg/stores"
)

// UserDirectory is the user-store surface the handlers consume.
type UserDirectory interface {
	Register(ctx context.Context, firstName, lastName, username, email, hashedPassword string) (int64, error)
	All(ctx context.Context, conds ...repository.Condition) ([]models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	ToggleSupplier(ctx context.Context, id int64) (bool, error)
	ToggleActive(ctx context.Context, id int64) (bool, error)
}

// CategoryDirectory is the category-store surface the handlers consume.
type CategoryDirectory interface {
	AllActive(ctx context.Context) ([]models.Category, error)
	ByID(ctx context.Context, id int64) (*models.Category, error)
	BySlug(ctx context.Context, categorySlug string) (*models.Category, error)
	Subcategories(ctx context.Context, parentID int64) ([]models.Category, error)
	Create(ctx context.Context, name string, parentID *int64) (int64, error)
	Update(ctx context.Context, id int64, name string, parentID *int64) error
	Deactivate(ctx context.Context, id int64) error
}

// ProductCatalog is the product-store surface the handlers consume.
type ProductCatalog interface {
	Available(ctx context.Context) ([]models.Product, error)
	AvailableInCategories(ctx context.Context, categoryIDs []int64) ([]models.Product, error)
	ByID(ctx context.Context, id int64) (*models.Product, error)
	BySlug(ctx context.Context, productSlug string) (*models.Product, error)
	Create(ctx context.Context, p stores.ProductParams, supplierID int64) (int64, error)
	Update(ctx context.Context, id int64, p stores.ProductParams) error
	Deactivate(ctx context.Context, id int64) error
}

// ReviewFeed is the review-store surface the handlers consume.
type ReviewFeed interface {
	ListWithRatings(ctx context.Context, conds ...repository.Condition) ([]stores.ReviewWithRating, error)
	ActiveForProduct(ctx context.Context, productID int64) ([]stores.ReviewWithRating, error)
	ByID(ctx context.Context, id int64, extra ...repository.Condition) (*models.Review, error)
	AddReview(ctx context.Context, userID, productID int64, grade int, comment string, commentDate time.Time) (int64, error)
	DeleteReview(ctx context.Context, reviewID, ratingID int64) error
}

// TokenAuthority is the authority surface the handlers consume.
type TokenAuthority interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(user *models.User, ttl time.Duration) (string, error)
	ResolveCaller(ctx context.Context, tokenString string) (*auth.Claims, error)
	Revoke(ctx context.Context, tokenString string) error
}

// Deps bundles everything the API needs.
type Deps struct {
	Users      UserDirectory
	Categories CategoryDirectory
	Products   ProductCatalog
	Reviews    ReviewFeed
	Authority  TokenAuthority
	TokenTTL   time.Duration
}

// API holds the handler dependencies.
type API struct {
	users      UserDirectory
	categories CategoryDirectory
	products   ProductCatalog
	reviews    ReviewFeed
	authority  TokenAuthority
	hasher     auth.PasswordHasher
	tokenTTL   time.Duration
	validate   *validator.Validate
}

// New creates the API from its dependencies.
func New(deps Deps) *API {
	return &API{
		users:      deps.Users,
		categories: deps.Categories,
		products:   deps.Products,
		reviews:    deps.Reviews,
		authority:  deps.Authority,
		hasher:     auth.BcryptHasher{},
		tokenTTL:   deps.TokenTTL,
		validate:   validator.New(),
	}
}

// Router builds the Fiber application with all routes mounted under /v1.
func (api *API) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "My e-commerce app"})
	})

	v1 := app.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/", api.register)
	authGroup.Post("/token", api.login)
	authGroup.Post("/logout", api.requireAuth, api.logout)
	authGroup.Get("/me", api.requireAuth, api.me)

	category := v1.Group("/category")
	category.Get("/all_categories", api.allCategories)
	category.Post("/create", api.requireAuth, api.createCategory)
	category.Put("/update_category", api.requireAuth, api.updateCategory)
	category.Delete("/delete", api.requireAuth, api.deleteCategory)

	products := v1.Group("/products")
	products.Get("/", api.allProducts)
	products.Post("/create", api.requireAuth, api.createProduct)
	products.Get("/detail/:product_slug", api.productDetail)
	products.Put("/detail/:product_slug", api.requireAuth, api.updateProduct)
	products.Delete("/delete", api.requireAuth, api.deleteProduct)
	products.Get("/:category_slug", api.productsByCategory)

	permission := v1.Group("/permission")
	permission.Get("/temp", api.listUsers)
	permission.Patch("/", api.requireAuth, api.toggleSupplier)
	permission.Delete("/delete", api.requireAuth, api.deleteUser)

	reviews := v1.Group("/reviews")
	reviews.Get("/all_reviews", api.allReviews)
	reviews.Get("/products_reviews", api.productReviews)
	reviews.Post("/add_review", api.requireAuth, api.addReview)
	reviews.Delete("/delete_reviews", api.requireAuth, api.deleteReview)

	return app
}

// errorHandler renders every error as a JSON body with the right status.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": msg,
	})
}

// httpError maps domain errors to HTTP statuses per the boundary contract:
// absence 404, bad credentials or invalid/revoked token 401, expired token
// or missing role 403, malformed claims 400, protected account 409.
func httpError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenRevoked):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrMalformedClaims):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, stores.ErrProtectedAccount):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

// queryID reads a required positive integer query parameter.
func queryID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// parseBody binds and validates a JSON request body.
func (api *API) parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := api.validate.Struct(dest); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
