package repository

import (
	"context"
	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	List(ctx context.Context) ([]*model.Booking, error)
	ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error)
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindByTicketCode(ctx context.Context, code uuid.UUID) (*model.Booking, error)
	ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error)
	SumQuantityByEvent(ctx context.Context, eventID int) (int, error)
	// MarkVerified 冪等：已驗證者再次標記不改變任何觀察結果
	MarkVerified(ctx context.Context, id int) error

	// Transaction methods
	CreateTx(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	SumQuantityByEventTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error)
	DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingJoinedSelect = `
	SELECT b.id, b.ticket_code, b.booking_date, b.quantity, b.total_price_cents,
	       b.verified, b.member_id, b.event_id, b.created_at, b.updated_at,
	       e.id, e.title, e.event_date, e.venue_id, e.category_id, e.price_cents, e.capacity,
	       v.name, c.name,
	       m.id, m.full_name, m.email, m.phone
	FROM bookings b
	JOIN events e ON e.id = b.event_id
	JOIN venues v ON v.id = e.venue_id
	JOIN event_categories c ON c.id = e.category_id
	JOIN members m ON m.id = b.member_id
`

func scanJoinedBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	var event model.Event
	var member model.Member

	err := row.Scan(
		&booking.ID,
		&booking.TicketCode,
		&booking.BookingDate,
		&booking.Quantity,
		&booking.TotalPriceCents,
		&booking.Verified,
		&booking.MemberID,
		&booking.EventID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&event.ID,
		&event.Title,
		&event.EventDate,
		&event.VenueID,
		&event.CategoryID,
		&event.PriceCents,
		&event.Capacity,
		&event.VenueName,
		&event.CategoryName,
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
	)
	if err != nil {
		return nil, err
	}

	booking.Event = &event
	booking.Member = &member
	return &booking, nil
}

func (r *BookingRepositoryImpl) queryJoined(ctx context.Context, where string, args ...interface{}) ([]*model.Booking, error) {
	query := fmt.Sprintf("%s %s ORDER BY b.booking_date DESC", bookingJoinedSelect, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)

	for rows.Next() {
		booking, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) List(ctx context.Context) ([]*model.Booking, error) {
	return r.queryJoined(ctx, "")
}

func (r *BookingRepositoryImpl) ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error) {
	return r.queryJoined(ctx, "WHERE b.member_id = $1", memberID)
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	query := bookingJoinedSelect + " WHERE b.id = $1"

	booking, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByTicketCode(ctx context.Context, code uuid.UUID) (*model.Booking, error) {
	query := bookingJoinedSelect + " WHERE b.ticket_code = $1"

	booking, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE member_id = $1 AND event_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, memberID, eventID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *BookingRepositoryImpl) SumQuantityByEvent(ctx context.Context, eventID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM bookings
		WHERE event_id = $1
	`

	var total int
	err := r.pool.QueryRow(ctx, query, eventID).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *BookingRepositoryImpl) MarkVerified(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET verified = TRUE, updated_at = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepositoryImpl) CreateTx(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (ticket_code, booking_date, quantity, total_price_cents, verified, member_id, event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, ticket_code, booking_date, quantity, total_price_cents,
			verified, member_id, event_id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		booking.TicketCode, booking.BookingDate, booking.Quantity,
		booking.TotalPriceCents, booking.Verified, booking.MemberID, booking.EventID,
	).Scan(
		&booking.ID,
		&booking.TicketCode,
		&booking.BookingDate,
		&booking.Quantity,
		&booking.TotalPriceCents,
		&booking.Verified,
		&booking.MemberID,
		&booking.EventID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// SumQuantityByEventTx 在持有活動列鎖的交易內重算已售數量
func (r *BookingRepositoryImpl) SumQuantityByEventTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM bookings
		WHERE event_id = $1
	`

	var total int
	err := tx.QueryRow(ctx, query, eventID).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *BookingRepositoryImpl) DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error {
	query := `DELETE FROM bookings WHERE event_id = $1`

	_, err := tx.Exec(ctx, query, eventID)
	return err
}
