// Package models defines the persisted entities. Column mapping comes from
// `db` struct tags; each type names its table for the repository layer.
// Deletion is always a soft delete: rows are marked inactive, never removed.
package models

import "time"

// User is an account holder. Role flags gate mutating operations; the
// password is stored only as a bcrypt hash.
type User struct {
	ID             int64  `db:"id" json:"id"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	Username       string `db:"username" json:"username"`
	Email          string `db:"email" json:"email"`
	HashedPassword string `db:"hashed_password" json:"-"`
	IsActive       bool   `db:"is_active" json:"is_active"`
	IsAdmin        bool   `db:"is_admin" json:"is_admin"`
	IsSupplier     bool   `db:"is_supplier" json:"is_supplier"`
	IsCustomer     bool   `db:"is_customer" json:"is_customer"`
}

// TableName returns the users table name.
func (User) TableName() string { return "users" }

// Category is a node in the self-referential category tree. A nil ParentID
// marks a root category.
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	ParentID *int64 `db:"parent_id" json:"parent_id"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// TableName returns the categories table name.
func (Category) TableName() string { return "categories" }

// Product belongs to a category and an owning supplier. Rating is the
// aggregate average grade of its active ratings.
type Product struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	ImageURL    string  `db:"image_url" json:"image_url"`
	Stock       int     `db:"stock" json:"stock"`
	CategoryID  int64   `db:"category_id" json:"category_id"`
	SupplierID  int64   `db:"supplier_id" json:"supplier_id"`
	Rating      float64 `db:"rating" json:"rating"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// TableName returns the products table name.
func (Product) TableName() string { return "products" }

// Rating is a single grade a user gave a product. Exactly one rating
// accompanies each review; the two are created and soft-deleted together.
type Rating struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Grade     int   `db:"grade" json:"grade"`
	IsActive  bool  `db:"is_active" json:"is_active"`
}

// TableName returns the ratings table name.
func (Rating) TableName() string { return "ratings" }

// Review is a user's comment on a product; it exclusively owns one rating
// row through RatingID.
type Review struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	ProductID   int64     `db:"product_id" json:"product_id"`
	RatingID    int64     `db:"rating_id" json:"rating_id"`
	Comment     string    `db:"comment" json:"comment"`
	CommentDate time.Time `db:"comment_date" json:"comment_date"`
	IsActive    bool      `db:"is_active" json:"is_active"`
}

// TableName returns the reviews table name.
func (Review) TableName() string { return "reviews" }
