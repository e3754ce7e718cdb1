package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager 將交易起訖抽象化，service 層只描述交易內容，
// 單元測試得以注入假交易而不需真實資料庫。
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type PoolTxManager struct {
	pool *pgxpool.Pool
}

func NewPoolTxManager(pool *pgxpool.Pool) TxManager {
	return &PoolTxManager{pool: pool}
}

func (m *PoolTxManager) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
