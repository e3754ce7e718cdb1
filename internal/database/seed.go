package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed 植入系統管理員的會員檔案；冪等，可重複執行
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		INSERT INTO members (full_name, email, phone, user_id)
		VALUES ('System Admin', 'admin@eventbooking.com', '0000000000', 'admin')
		ON CONFLICT (user_id) WHERE user_id IS NOT NULL DO NOTHING
	`
	_, err := pool.Exec(ctx, query)
	return err
}
