package repository

import (
	"context"
	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	List(ctx context.Context) ([]*model.Review, error)
	ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error)
	ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error
}

type ReviewRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &ReviewRepositoryImpl{
		pool: pool,
	}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	query := `
		INSERT INTO reviews (comment, rating, review_date, member_id, event_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, comment, rating, review_date, member_id, event_id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		review.Comment, review.Rating, review.ReviewDate, review.MemberID, review.EventID,
	).Scan(
		&review.ID,
		&review.Comment,
		&review.Rating,
		&review.ReviewDate,
		&review.MemberID,
		&review.EventID,
		&review.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *ReviewRepositoryImpl) List(ctx context.Context) ([]*model.Review, error) {
	query := `
		SELECT r.id, r.comment, r.rating, r.review_date, r.member_id, r.event_id, r.created_at,
		       m.full_name, e.title
		FROM reviews r
		JOIN members m ON m.id = r.member_id
		JOIN events e ON e.id = r.event_id
		ORDER BY r.review_date DESC
	`

	return r.queryReviews(ctx, query)
}

func (r *ReviewRepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	query := `
		SELECT r.id, r.comment, r.rating, r.review_date, r.member_id, r.event_id, r.created_at,
		       m.full_name, e.title
		FROM reviews r
		JOIN members m ON m.id = r.member_id
		JOIN events e ON e.id = r.event_id
		WHERE r.event_id = $1
		ORDER BY r.review_date DESC
	`

	return r.queryReviews(ctx, query, eventID)
}

func (r *ReviewRepositoryImpl) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*model.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)

	for rows.Next() {
		var review model.Review
		err := rows.Scan(
			&review.ID,
			&review.Comment,
			&review.Rating,
			&review.ReviewDate,
			&review.MemberID,
			&review.EventID,
			&review.CreatedAt,
			&review.MemberName,
			&review.EventTitle,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *ReviewRepositoryImpl) ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE member_id = $1 AND event_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, memberID, eventID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ReviewRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepositoryImpl) DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error {
	query := `DELETE FROM reviews WHERE event_id = $1`

	_, err := tx.Exec(ctx, query, eventID)
	return err
}
