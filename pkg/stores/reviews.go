package stores

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/repository"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// ReviewWithRating pairs a review with the rating row it owns.
type ReviewWithRating struct {
	Review models.Review `json:"review"`
	Rating models.Rating `json:"rating"`
}

// ReviewStore provides access to reviews and their ratings. The two are a
// 1:1 pair created and soft-deleted together, so the composite operations
// here run inside a single transaction.
type ReviewStore struct {
	db      *storage.DB
	reviews *repository.Repository[models.Review]
	ratings *repository.Repository[models.Rating]
}

// NewReviewStore creates a ReviewStore on the given database handle.
func NewReviewStore(db *storage.DB) *ReviewStore {
	return &ReviewStore{
		db:      db,
		reviews: repository.New[models.Review](db.Pool()),
		ratings: repository.New[models.Rating](db.Pool()),
	}
}

// ByID returns the review with the given id, or nil when absent.
func (s *ReviewStore) ByID(ctx context.Context, id int64, extra ...repository.Condition) (*models.Review, error) {
	return s.reviews.FindByID(ctx, id, extra...)
}

const joinedSelect = `SELECT
	reviews.id, reviews.user_id, reviews.product_id, reviews.rating_id,
	reviews.comment, reviews.comment_date, reviews.is_active,
	ratings.id, ratings.user_id, ratings.product_id, ratings.grade, ratings.is_active
FROM reviews
INNER JOIN ratings ON ratings.id = reviews.rating_id`

// ListWithRatings returns review/rating pairs via an inner join. Condition
// columns must be qualified (reviews.* or ratings.*); including the
// active-flag conditions excludes soft-deleted pairs.
func (s *ReviewStore) ListWithRatings(ctx context.Context, conds ...repository.Condition) ([]ReviewWithRating, error) {
	whereSQL, args, err := repository.BuildWhere(conds, 1)
	if err != nil {
		return nil, err
	}

	sql := joinedSelect
	if whereSQL != "" {
		sql += "\n" + whereSQL
	}

	rows, err := s.db.Pool().Query(ctx, sql, args...)
	if err != nil {
		return nil, &storage.QueryError{Query: sql, Err: err}
	}
	defer rows.Close()

	var results []ReviewWithRating
	for rows.Next() {
		var rr ReviewWithRating
		err := rows.Scan(
			&rr.Review.ID, &rr.Review.UserID, &rr.Review.ProductID, &rr.Review.RatingID,
			&rr.Review.Comment, &rr.Review.CommentDate, &rr.Review.IsActive,
			&rr.Rating.ID, &rr.Rating.UserID, &rr.Rating.ProductID, &rr.Rating.Grade, &rr.Rating.IsActive,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, rr)
	}
	return results, rows.Err()
}

// ActiveForProduct returns the active review/rating pairs for one product.
func (s *ReviewStore) ActiveForProduct(ctx context.Context, productID int64) ([]ReviewWithRating, error) {
	return s.ListWithRatings(ctx,
		repository.Eq("reviews.product_id", productID),
		repository.Eq("reviews.is_active", true),
		repository.Eq("ratings.is_active", true))
}

// AddReview inserts a rating and a review referencing it as one unit of
// work and refreshes the product's aggregate rating. Either all three
// writes commit or none do.
func (s *ReviewStore) AddReview(ctx context.Context, userID, productID int64, grade int, comment string, commentDate time.Time) (int64, error) {
	var reviewID int64

	err := s.db.WithinTx(ctx, func(tx pgx.Tx) error {
		ratingID, err := s.ratings.Within(tx).Add(ctx, repository.Values{
			"user_id":    userID,
			"product_id": productID,
			"grade":      grade,
			"is_active":  true,
		})
		if err != nil {
			return err
		}

		reviewID, err = s.reviews.Within(tx).Add(ctx, repository.Values{
			"user_id":      userID,
			"product_id":   productID,
			"rating_id":    ratingID,
			"comment":      comment,
			"comment_date": commentDate,
			"is_active":    true,
		})
		if err != nil {
			return err
		}

		return recomputeProductRating(ctx, tx, productID)
	})
	if err != nil {
		return 0, err
	}
	return reviewID, nil
}

// DeleteReview soft-deletes a review and its rating as one unit of work
// and refreshes the product's aggregate rating. Returns
// storage.ErrNotFound when no active review has the given id.
func (s *ReviewStore) DeleteReview(ctx context.Context, reviewID, ratingID int64) error {
	return s.db.WithinTx(ctx, func(tx pgx.Tx) error {
		review, err := s.reviews.Within(tx).FindByID(ctx, reviewID, repository.Eq("is_active", true))
		if err != nil {
			return err
		}
		if review == nil {
			return storage.ErrNotFound
		}

		inactive := repository.Values{"is_active": false}
		if err := s.reviews.Within(tx).Update(ctx, []repository.Condition{repository.Eq("id", reviewID)}, inactive); err != nil {
			return err
		}
		if err := s.ratings.Within(tx).Update(ctx, []repository.Condition{repository.Eq("id", ratingID)}, inactive); err != nil {
			return err
		}

		return recomputeProductRating(ctx, tx, review.ProductID)
	})
}

// recomputeProductRating rewrites the product's aggregate rating from the
// average grade of its active ratings. Running it on both add and delete
// keeps the aggregate consistent with the live review set.
func recomputeProductRating(ctx context.Context, q storage.Querier, productID int64) error {
	const sql = `UPDATE products SET rating = COALESCE(
		(SELECT AVG(grade)::float8 FROM ratings WHERE product_id = $1 AND is_active), 0)
	WHERE id = $1`

	if _, err := q.Exec(ctx, sql, productID); err != nil {
		return &storage.QueryError{Query: sql, Err: err}
	}
	return nil
}
