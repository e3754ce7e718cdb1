package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventbooking/internal/cache"
	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// serializingTxManager 以互斥鎖模擬 FOR UPDATE 對同一活動列的序列化
type serializingTxManager struct {
	mu sync.Mutex
}

func (t *serializingTxManager) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(nil)
}

// seatLedger 交易內共享的座位帳；booked 與 accepted 只在持有交易鎖時讀寫
type seatLedger struct {
	event    *model.Event
	booked   int
	accepted int
}

type ledgerEventRepo struct {
	EventRepositoryMock
	ledger *seatLedger
}

func (r *ledgerEventRepo) FindByID(ctx context.Context, id int) (*model.Event, error) {
	return r.ledger.event, nil
}

func (r *ledgerEventRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	return r.ledger.event, nil
}

type ledgerBookingRepo struct {
	BookingRepositoryMock
	ledger *seatLedger
}

func (r *ledgerBookingRepo) SumQuantityByEventTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	return r.ledger.booked, nil
}

func (r *ledgerBookingRepo) CreateTx(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	r.ledger.booked += booking.Quantity
	r.ledger.accepted++
	return booking, nil
}

func TestBookConcurrentNeverExceedsCapacity(t *testing.T) {
	const (
		capacity = 10
		attempts = 40
	)

	ledger := &seatLedger{
		event: &model.Event{
			ID:         1,
			Title:      "Concert",
			EventDate:  time.Now().Add(48 * time.Hour),
			PriceCents: 7500,
			Capacity:   capacity,
		},
	}

	capacityCache := new(CapacityCacheMock)
	capacityCache.On("Reserve", mock.Anything, 1, 1).Return(cache.ReserveCold, nil)
	confirmQueue := new(ConfirmationQueueMock)
	confirmQueue.On("PublishConfirmation", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(
		&serializingTxManager{},
		&ledgerBookingRepo{ledger: ledger},
		&ledgerEventRepo{ledger: ledger},
		capacityCache,
		confirmQueue,
	)

	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(memberID int) {
			defer wg.Done()
			_, err := svc.Book(context.Background(), memberID, 1, 1)
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, apperrors.ErrSoldOut)
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, capacity, ledger.accepted)
	assert.LessOrEqual(t, ledger.booked, capacity)
}
