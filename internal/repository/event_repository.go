package repository

import (
	"context"
	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filter model.ListEventsQuery) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	// UpdateWithVersion 樂觀併發更新：expectedUpdatedAt 不符時回傳 ErrConcurrencyConflict
	UpdateWithVersion(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error)

	// Transaction methods
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (title, description, event_date, venue_id, category_id, price_cents, capacity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, description, event_date, venue_id, category_id,
			price_cents, capacity, created_by, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.EventDate, event.VenueID,
		event.CategoryID, event.PriceCents, event.Capacity, event.CreatedBy,
	).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.VenueID,
		&event.CategoryID,
		&event.PriceCents,
		&event.Capacity,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter model.ListEventsQuery) ([]*model.Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e.event_date, e.venue_id, e.category_id,
		       e.price_cents, e.capacity, e.created_by, e.created_at, e.updated_at,
		       v.name, c.name
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		JOIN event_categories c ON c.id = e.category_id
	`

	var conditions []string
	var args []interface{}

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.Search != "" {
		addCondition("(e.title ILIKE $%[1]d OR e.description ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		addCondition("e.category_id = $%d", *filter.CategoryID)
	}
	if filter.VenueID != nil {
		addCondition("e.venue_id = $%d", *filter.VenueID)
	}
	if filter.DateFrom != nil {
		addCondition("e.event_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("e.event_date <= $%d", *filter.DateTo)
	}
	if filter.PriceMinCents != nil {
		addCondition("e.price_cents >= $%d", *filter.PriceMinCents)
	}
	if filter.PriceMaxCents != nil {
		addCondition("e.price_cents <= $%d", *filter.PriceMaxCents)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.event_date ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)

	for rows.Next() {
		var event model.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EventDate,
			&event.VenueID,
			&event.CategoryID,
			&event.PriceCents,
			&event.Capacity,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.VenueName,
			&event.CategoryName,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e.event_date, e.venue_id, e.category_id,
		       e.price_cents, e.capacity, e.created_by, e.created_at, e.updated_at,
		       v.name, c.name
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		JOIN event_categories c ON c.id = e.category_id
		WHERE e.id = $1
	`

	var event model.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.VenueID,
		&event.CategoryID,
		&event.PriceCents,
		&event.Capacity,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.VenueName,
		&event.CategoryName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) UpdateWithVersion(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error) {
	event, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Description != nil {
		event.Description = params.Description
	}
	if params.EventDate != nil {
		event.EventDate = *params.EventDate
	}
	if params.VenueID != nil {
		event.VenueID = *params.VenueID
	}
	if params.CategoryID != nil {
		event.CategoryID = *params.CategoryID
	}
	if params.PriceCents != nil {
		event.PriceCents = *params.PriceCents
	}
	if params.Capacity != nil {
		event.Capacity = *params.Capacity
	}

	query := `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, venue_id = $4,
		    category_id = $5, price_cents = $6, capacity = $7, updated_at = $8
		WHERE id = $9 AND updated_at = $10
		RETURNING id, title, description, event_date, venue_id, category_id,
			price_cents, capacity, created_by, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.EventDate, event.VenueID,
		event.CategoryID, event.PriceCents, event.Capacity, time.Now().UTC(),
		id, expectedUpdatedAt,
	).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.VenueID,
		&event.CategoryID,
		&event.PriceCents,
		&event.Capacity,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			// 列不存在是 not found；列仍在但權杖不符是併發衝突
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, apperrors.ErrConcurrencyConflict
		}
		return nil, err
	}

	return event, nil
}

// FindByIDForUpdate 鎖定活動列，序列化同一活動的訂票交易
func (r *EventRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `
		SELECT id, title, description, event_date, venue_id, category_id,
		       price_cents, capacity, created_by, created_at, updated_at
		FROM events
		WHERE id = $1
		FOR UPDATE
	`

	var event model.Event
	err := tx.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.VenueID,
		&event.CategoryID,
		&event.PriceCents,
		&event.Capacity,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
