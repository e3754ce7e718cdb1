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

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	List(ctx context.Context) ([]*model.Venue, error)
	FindByID(ctx context.Context, id int) (*model.Venue, error)
	Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error)
	Delete(ctx context.Context, id int) error
	CountEvents(ctx context.Context, id int) (int, error)
}

type VenueRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &VenueRepositoryImpl{
		pool: pool,
	}
}

func (r *VenueRepositoryImpl) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	query := `
		INSERT INTO venues (name, address)
		VALUES ($1, $2)
		RETURNING id, name, address, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, venue.Name, venue.Address).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return venue, nil
}

func (r *VenueRepositoryImpl) List(ctx context.Context) ([]*model.Venue, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM venues
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*model.Venue, 0)

	for rows.Next() {
		var venue model.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}

func (r *VenueRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM venues
		WHERE id = $1
	`

	var venue model.Venue
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	return &venue, nil
}

func (r *VenueRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error) {
	venue, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		venue.Name = *params.Name
	}
	if params.Address != nil {
		venue.Address = params.Address
	}

	query := `
		UPDATE venues
		SET name = $1, address = $2, updated_at = $3
		WHERE id = $4
		RETURNING id, name, address, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query, venue.Name, venue.Address, time.Now().UTC(), id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	return venue, nil
}

// Delete 拒絕刪除仍被活動引用的場地。條件式 DELETE 搭配 FK RESTRICT 作為後盾。
func (r *VenueRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM venues
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM events WHERE venue_id = $1)
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrVenueInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrVenueInUse
	}

	return nil
}

func (r *VenueRepositoryImpl) CountEvents(ctx context.Context, id int) (int, error) {
	query := `SELECT COUNT(*) FROM events WHERE venue_id = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, id).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
