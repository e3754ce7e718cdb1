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

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) (*model.Member, error)
	// UpsertByUserID 以 user_id 做冪等寫入：已存在時不變更既有資料
	UpsertByUserID(ctx context.Context, member *model.Member) error
	List(ctx context.Context) ([]*model.Member, error)
	FindByID(ctx context.Context, id int) (*model.Member, error)
	FindByUserID(ctx context.Context, userID string) (*model.Member, error)
	Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error)
	Delete(ctx context.Context, id int) error
}

type MemberRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &MemberRepositoryImpl{
		pool: pool,
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *model.Member) (*model.Member, error) {
	query := `
		INSERT INTO members (full_name, email, phone, preferences, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, full_name, email, phone, preferences, user_id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		member.FullName, member.Email, member.Phone, member.Preferences, member.UserID,
	).Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
		&member.Preferences,
		&member.UserID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return member, nil
}

func (r *MemberRepositoryImpl) UpsertByUserID(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (full_name, email, phone, preferences, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) WHERE user_id IS NOT NULL DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		member.FullName, member.Email, member.Phone, member.Preferences, member.UserID,
	)
	return err
}

func (r *MemberRepositoryImpl) List(ctx context.Context) ([]*model.Member, error) {
	query := `
		SELECT id, full_name, email, phone, preferences, user_id, created_at, updated_at
		FROM members
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*model.Member, 0)

	for rows.Next() {
		var member model.Member
		err := rows.Scan(
			&member.ID,
			&member.FullName,
			&member.Email,
			&member.Phone,
			&member.Preferences,
			&member.UserID,
			&member.CreatedAt,
			&member.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *MemberRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Member, error) {
	query := `
		SELECT id, full_name, email, phone, preferences, user_id, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var member model.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
		&member.Preferences,
		&member.UserID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

func (r *MemberRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*model.Member, error) {
	query := `
		SELECT id, full_name, email, phone, preferences, user_id, created_at, updated_at
		FROM members
		WHERE user_id = $1
	`

	var member model.Member
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
		&member.Preferences,
		&member.UserID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error) {
	member, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		member.FullName = *params.FullName
	}
	if params.Email != nil {
		member.Email = *params.Email
	}
	if params.Phone != nil {
		member.Phone = *params.Phone
	}
	if params.Preferences != nil {
		member.Preferences = params.Preferences
	}

	query := `
		UPDATE members
		SET full_name = $1, email = $2, phone = $3, preferences = $4, updated_at = $5
		WHERE id = $6
		RETURNING id, full_name, email, phone, preferences, user_id, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		member.FullName, member.Email, member.Phone, member.Preferences, time.Now().UTC(), id,
	).Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
		&member.Preferences,
		&member.UserID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	return member, nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM members WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrMemberInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}
