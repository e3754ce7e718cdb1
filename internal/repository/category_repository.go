package repository

import (
	"context"
	"errors"
	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.EventCategory) (*model.EventCategory, error)
	List(ctx context.Context) ([]*model.EventCategory, error)
	FindByID(ctx context.Context, id int) (*model.EventCategory, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.EventCategory, error)
	Delete(ctx context.Context, id int) error
}

type CategoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &CategoryRepositoryImpl{
		pool: pool,
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *model.EventCategory) (*model.EventCategory, error) {
	query := `
		INSERT INTO event_categories (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, category.Name).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, err
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*model.EventCategory, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM event_categories
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*model.EventCategory, 0)

	for rows.Next() {
		var category model.EventCategory
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id int) (*model.EventCategory, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM event_categories
		WHERE id = $1
	`

	var category model.EventCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.EventCategory, error) {
	if params.Name == nil {
		return nil, apperrors.ErrInvalidInput
	}

	query := `
		UPDATE event_categories
		SET name = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, name, created_at, updated_at
	`

	var category model.EventCategory
	err := r.pool.QueryRow(ctx, query, *params.Name, time.Now().UTC(), id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, err
	}

	return &category, nil
}

// Delete 拒絕刪除仍被活動引用的分類
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM event_categories
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM events WHERE category_id = $1)
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrCategoryInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrCategoryInUse
	}

	return nil
}
