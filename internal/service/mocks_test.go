package service

import (
	"context"
	"eventbooking/internal/cache"
	"eventbooking/internal/model"
	"eventbooking/internal/queue"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// 手寫 testify mocks，涵蓋 service 層依賴的介面

type TxManagerMock struct {
	mock.Mock
}

// WithinTx 直接以 nil tx 執行 fn；repository mock 不觸碰 tx
func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type EventRepositoryMock struct {
	mock.Mock
}

func (m *EventRepositoryMock) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) List(ctx context.Context, filter model.ListEventsQuery) ([]*model.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) UpdateWithVersion(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error) {
	args := m.Called(ctx, id, params, expectedUpdatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type BookingRepositoryMock struct {
	mock.Mock
}

func (m *BookingRepositoryMock) List(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) FindByTicketCode(ctx context.Context, code uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error) {
	args := m.Called(ctx, memberID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepositoryMock) SumQuantityByEvent(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepositoryMock) MarkVerified(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookingRepositoryMock) CreateTx(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	args := m.Called(ctx, tx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) SumQuantityByEventTx(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	args := m.Called(ctx, tx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepositoryMock) DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error {
	args := m.Called(ctx, tx, eventID)
	return args.Error(0)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

func (m *ReviewRepositoryMock) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) List(ctx context.Context) ([]*model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ExistsByMemberAndEvent(ctx context.Context, memberID, eventID int) (bool, error) {
	args := m.Called(ctx, memberID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) DeleteByEventTx(ctx context.Context, tx pgx.Tx, eventID int) error {
	args := m.Called(ctx, tx, eventID)
	return args.Error(0)
}

type MemberRepositoryMock struct {
	mock.Mock
}

func (m *MemberRepositoryMock) Create(ctx context.Context, member *model.Member) (*model.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberRepositoryMock) UpsertByUserID(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MemberRepositoryMock) List(ctx context.Context) ([]*model.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Member), args.Error(1)
}

func (m *MemberRepositoryMock) FindByID(ctx context.Context, id int) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberRepositoryMock) FindByUserID(ctx context.Context, userID string) (*model.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberRepositoryMock) Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type VenueRepositoryMock struct {
	mock.Mock
}

func (m *VenueRepositoryMock) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	args := m.Called(ctx, venue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Venue), args.Error(1)
}

func (m *VenueRepositoryMock) List(ctx context.Context) ([]*model.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Venue), args.Error(1)
}

func (m *VenueRepositoryMock) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Venue), args.Error(1)
}

func (m *VenueRepositoryMock) Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Venue), args.Error(1)
}

func (m *VenueRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VenueRepositoryMock) CountEvents(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CategoryRepositoryMock struct {
	mock.Mock
}

func (m *CategoryRepositoryMock) Create(ctx context.Context, category *model.EventCategory) (*model.EventCategory, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventCategory), args.Error(1)
}

func (m *CategoryRepositoryMock) List(ctx context.Context) ([]*model.EventCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventCategory), args.Error(1)
}

func (m *CategoryRepositoryMock) FindByID(ctx context.Context, id int) (*model.EventCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventCategory), args.Error(1)
}

func (m *CategoryRepositoryMock) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.EventCategory, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventCategory), args.Error(1)
}

func (m *CategoryRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InquiryRepositoryMock struct {
	mock.Mock
}

func (m *InquiryRepositoryMock) Create(ctx context.Context, inquiry *model.Inquiry) (*model.Inquiry, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *InquiryRepositoryMock) List(ctx context.Context) ([]*model.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inquiry), args.Error(1)
}

type CapacityCacheMock struct {
	mock.Mock
}

func (m *CapacityCacheMock) WarmUp(ctx context.Context, eventID int, remaining int) error {
	args := m.Called(ctx, eventID, remaining)
	return args.Error(0)
}

func (m *CapacityCacheMock) GetRemaining(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *CapacityCacheMock) Reserve(ctx context.Context, eventID int, quantity int) (cache.ReserveResult, error) {
	args := m.Called(ctx, eventID, quantity)
	return args.Get(0).(cache.ReserveResult), args.Error(1)
}

func (m *CapacityCacheMock) Release(ctx context.Context, eventID int, quantity int) error {
	args := m.Called(ctx, eventID, quantity)
	return args.Error(0)
}

func (m *CapacityCacheMock) Invalidate(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type ConfirmationQueueMock struct {
	mock.Mock
}

func (m *ConfirmationQueueMock) PublishConfirmation(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *ConfirmationQueueMock) SubscribeConfirmations(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
