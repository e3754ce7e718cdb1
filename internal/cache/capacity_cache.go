package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ReserveResult 預約快取的判定結果
type ReserveResult int

const (
	// ReserveOK 快取扣位成功
	ReserveOK ReserveResult = iota
	// ReserveSoldOut 快取顯示已無剩餘座位
	ReserveSoldOut
	// ReserveInsufficient 剩餘座位不足本次請求
	ReserveInsufficient
	// ReserveCold 快取未預熱；呼叫端應直接走資料庫交易
	ReserveCold
)

// CapacityCache 訂票熱路徑的 Redis 前置過濾。
// 資料庫交易才是座位數的權威來源：快取可以提早拒絕，但不能代替交易放行。
type CapacityCache interface {
	// WarmUp 預先載入活動剩餘座位
	WarmUp(ctx context.Context, eventID int, remaining int) error
	// GetRemaining 讀取快取剩餘座位
	GetRemaining(ctx context.Context, eventID int) (int, error)
	// Reserve 以 Lua 腳本原子扣減剩餘座位
	Reserve(ctx context.Context, eventID int, quantity int) (ReserveResult, error)
	// Release 回滾先前的扣減（資料庫交易失敗時）
	Release(ctx context.Context, eventID int, quantity int) error
	// Invalidate 移除快取（活動刪除或容量調整後重新預熱前）
	Invalidate(ctx context.Context, eventID int) error
}

// ErrNotWarmedUp 快取中沒有該活動
var ErrNotWarmedUp = errors.New("event capacity not warmed up")

type RedisCapacityCache struct {
	client *redis.Client
}

func NewRedisCapacityCache(client *redis.Client) CapacityCache {
	return &RedisCapacityCache{
		client: client,
	}
}

func (c *RedisCapacityCache) getSeatsKey(eventID int) string {
	return fmt.Sprintf("event:%d:seats", eventID)
}

func (c *RedisCapacityCache) WarmUp(ctx context.Context, eventID int, remaining int) error {
	return c.client.Set(ctx, c.getSeatsKey(eventID), remaining, 0).Err()
}

func (c *RedisCapacityCache) GetRemaining(ctx context.Context, eventID int) (int, error) {
	val, err := c.client.Get(ctx, c.getSeatsKey(eventID)).Int()
	if err == redis.Nil {
		return -1, ErrNotWarmedUp
	}
	return val, err
}

func (c *RedisCapacityCache) Reserve(ctx context.Context, eventID int, quantity int) (ReserveResult, error) {
	key := c.getSeatsKey(eventID)

	script := `
		local seats_key = KEYS[1]
		local request_qty = tonumber(ARGV[1])

		local remaining = redis.call('GET', seats_key)
		if not remaining then
			return -3 -- 未預熱
		end

		remaining = tonumber(remaining)
		if remaining <= 0 then
			return -1 -- 完售
		end
		if request_qty > remaining then
			return -2 -- 剩餘不足
		end

		redis.call('DECRBY', seats_key, request_qty)
		return 1
	`

	result, err := c.client.Eval(ctx, script, []string{key}, quantity).Result()
	if err != nil {
		return ReserveCold, err
	}

	switch result.(int64) {
	case 1:
		return ReserveOK, nil
	case -1:
		return ReserveSoldOut, nil
	case -2:
		return ReserveInsufficient, nil
	case -3:
		return ReserveCold, nil
	default:
		return ReserveCold, errors.New("unexpected result")
	}
}

func (c *RedisCapacityCache) Release(ctx context.Context, eventID int, quantity int) error {
	key := c.getSeatsKey(eventID)

	script := `
		local seats_key = KEYS[1]
		local rollback_qty = tonumber(ARGV[1])

		if redis.call('EXISTS', seats_key) == 1 then
			redis.call('INCRBY', seats_key, rollback_qty)
		end

		return "OK"
	`

	_, err := c.client.Eval(ctx, script, []string{key}, quantity).Result()
	return err
}

func (c *RedisCapacityCache) Invalidate(ctx context.Context, eventID int) error {
	return c.client.Del(ctx, c.getSeatsKey(eventID)).Err()
}
