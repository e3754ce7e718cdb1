package repository

import (
	"context"
	"eventbooking/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) (*model.Inquiry, error)
	List(ctx context.Context) ([]*model.Inquiry, error)
}

type InquiryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &InquiryRepositoryImpl{
		pool: pool,
	}
}

func (r *InquiryRepositoryImpl) Create(ctx context.Context, inquiry *model.Inquiry) (*model.Inquiry, error) {
	query := `
		INSERT INTO inquiries (name, email, message, inquiry_date, member_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, message, inquiry_date, member_id
	`

	err := r.pool.QueryRow(ctx, query,
		inquiry.Name, inquiry.Email, inquiry.Message, inquiry.InquiryDate, inquiry.MemberID,
	).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Email,
		&inquiry.Message,
		&inquiry.InquiryDate,
		&inquiry.MemberID,
	)

	if err != nil {
		return nil, err
	}

	return inquiry, nil
}

func (r *InquiryRepositoryImpl) List(ctx context.Context) ([]*model.Inquiry, error) {
	query := `
		SELECT id, name, email, message, inquiry_date, member_id
		FROM inquiries
		ORDER BY inquiry_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := make([]*model.Inquiry, 0)

	for rows.Next() {
		var inquiry model.Inquiry
		err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Email,
			&inquiry.Message,
			&inquiry.InquiryDate,
			&inquiry.MemberID,
		)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, &inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return inquiries, nil
}
