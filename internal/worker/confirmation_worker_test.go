package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventbooking/internal/model"
	"eventbooking/internal/queue"
	apperrors "eventbooking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingRepoStub struct {
	mock.Mock
	mu    sync.Mutex
	calls int
}

func (s *bookingRepoStub) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (s *bookingRepoStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// 其餘方法僅為滿足介面，worker 不會呼叫

func (s *bookingRepoStub) List(ctx context.Context) ([]*model.Booking, error) { return nil, nil }
func (s *bookingRepoStub) ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error) {
	return nil, nil
}
func (s *bookingRepoStub) FindByTicketCode(ctx context.Context, code uuid.UUID) (*model.Booking, error) {
	return nil, nil
}
func (s *bookingRepoStub) ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error) {
	return false, nil
}
func (s *bookingRepoStub) SumQuantityByEvent(ctx context.Context, eventID int) (int, error) {
	return 0, nil
}
func (s *bookingRepoStub) MarkVerified(ctx context.Context, id int) error { return nil }
func (s *bookingRepoStub) CreateTx(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	return nil, nil
}
func (s *bookingRepoStub) SumQuantityByEventTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	return 0, nil
}
func (s *bookingRepoStub) DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error {
	return nil
}

func TestConfirmationWorker(t *testing.T) {
	t.Run("consumes and acks confirmations", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := new(bookingRepoStub)
		repo.On("FindByID", mock.Anything, 1).Return(&model.Booking{ID: 1, TicketCode: uuid.New()}, nil)

		q := queue.NewMemoryConfirmationQueue(4)
		w := NewConfirmationWorker(repo, q)
		require.NoError(t, w.Start(ctx))

		require.NoError(t, q.PublishConfirmation(ctx, &model.Booking{ID: 1}))

		assert.Eventually(t, func() bool {
			return repo.callCount() >= 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("discards confirmations for deleted bookings", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := new(bookingRepoStub)
		repo.On("FindByID", mock.Anything, 9).Return(nil, apperrors.ErrBookingNotFound)

		q := queue.NewMemoryConfirmationQueue(4)
		w := NewConfirmationWorker(repo, q)
		require.NoError(t, w.Start(ctx))

		require.NoError(t, q.PublishConfirmation(ctx, &model.Booking{ID: 9}))

		// 丟棄而非重送：呼叫數停在 1
		assert.Eventually(t, func() bool {
			return repo.callCount() == 1
		}, time.Second, 10*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, repo.callCount())
	})
}
