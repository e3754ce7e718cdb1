package service

import (
	"context"
	"errors"
	"eventbooking/internal/cache"
	"eventbooking/internal/database"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filter model.ListEventsQuery) ([]*model.EventResponse, error)
	GetByID(ctx context.Context, id int) (*model.EventResponse, error)
	// Update 樂觀併發更新：expectedUpdatedAt 與當前值不符時回傳 ErrConcurrencyConflict
	Update(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error)
	// Delete 交易內連動刪除評論與訂票後移除活動
	Delete(ctx context.Context, id int) error
}

type EventServiceImpl struct {
	txManager     database.TxManager
	repository    repository.EventRepository
	venueRepo     repository.VenueRepository
	categoryRepo  repository.CategoryRepository
	bookingRepo   repository.BookingRepository
	reviewRepo    repository.ReviewRepository
	capacityCache cache.CapacityCache
}

func NewEventService(
	txManager database.TxManager,
	eventRepository repository.EventRepository,
	venueRepository repository.VenueRepository,
	categoryRepository repository.CategoryRepository,
	bookingRepository repository.BookingRepository,
	reviewRepository repository.ReviewRepository,
	capacityCache cache.CapacityCache,
) EventService {
	return &EventServiceImpl{
		txManager:     txManager,
		repository:    eventRepository,
		venueRepo:     venueRepository,
		categoryRepo:  categoryRepository,
		bookingRepo:   bookingRepository,
		reviewRepo:    reviewRepository,
		capacityCache: capacityCache,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := validateEventFields(event.PriceCents, event.Capacity); err != nil {
		return nil, err
	}

	// 先確認關聯存在，讓錯誤語意比 FK violation 清楚
	if _, err := s.venueRepo.FindByID(ctx, event.VenueID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, event.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	if err := s.capacityCache.WarmUp(ctx, created.ID, created.Capacity); err != nil {
		logger.WithComponent("event_service").Warn("failed to warm up capacity cache",
			zap.Int("event_id", created.ID),
			zap.Error(err))
	}

	return created, nil
}

func (s *EventServiceImpl) List(ctx context.Context, filter model.ListEventsQuery) ([]*model.EventResponse, error) {
	events, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.EventResponse, 0, len(events))
	for _, event := range events {
		remaining, err := s.cachedRemainingSeats(ctx, event)
		if err != nil {
			return nil, err
		}
		responses = append(responses, model.NewEventResponse(event, remaining))
	}

	return responses, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.EventResponse, error) {
	event, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	remaining, err := s.cachedRemainingSeats(ctx, event)
	if err != nil {
		return nil, err
	}

	return model.NewEventResponse(event, remaining), nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error) {
	if params.PriceCents != nil || params.Capacity != nil {
		current, err := s.repository.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		price := current.PriceCents
		capacity := current.Capacity
		if params.PriceCents != nil {
			price = *params.PriceCents
		}
		if params.Capacity != nil {
			capacity = *params.Capacity
		}
		if err := validateEventFields(price, capacity); err != nil {
			return nil, err
		}
	}
	if params.VenueID != nil {
		if _, err := s.venueRepo.FindByID(ctx, *params.VenueID); err != nil {
			return nil, err
		}
	}
	if params.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repository.UpdateWithVersion(ctx, id, params, expectedUpdatedAt)
	if err != nil {
		return nil, err
	}

	// 容量可能變動，重新預熱快取
	remaining, err := s.remainingSeats(ctx, updated)
	if err == nil {
		if warmErr := s.capacityCache.WarmUp(ctx, updated.ID, remaining); warmErr != nil {
			logger.WithComponent("event_service").Warn("failed to warm up capacity cache",
				zap.Int("event_id", updated.ID),
				zap.Error(warmErr))
		}
	}

	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) error {
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reviewRepo.DeleteByEventTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.bookingRepo.DeleteByEventTx(ctx, tx, id); err != nil {
			return err
		}
		return s.repository.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if err := s.capacityCache.Invalidate(ctx, id); err != nil {
		logger.WithComponent("event_service").Warn("failed to invalidate capacity cache",
			zap.Int("event_id", id),
			zap.Error(err))
	}

	return nil
}

// cachedRemainingSeats 讀取路徑的剩餘座位：快取命中即回傳，否則回退資料庫加總
func (s *EventServiceImpl) cachedRemainingSeats(ctx context.Context, event *model.Event) (int, error) {
	remaining, err := s.capacityCache.GetRemaining(ctx, event.ID)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, cache.ErrNotWarmedUp) {
		logger.WithComponent("event_service").Warn("capacity cache read failed, falling back to db",
			zap.Int("event_id", event.ID),
			zap.Error(err))
	}
	return s.remainingSeats(ctx, event)
}

// remainingSeats 以資料庫加總為準（更新後重新預熱時使用）
func (s *EventServiceImpl) remainingSeats(ctx context.Context, event *model.Event) (int, error) {
	booked, err := s.bookingRepo.SumQuantityByEvent(ctx, event.ID)
	if err != nil {
		return 0, err
	}
	return Remaining(event.Capacity, booked), nil
}

func validateEventFields(priceCents int64, capacity int) error {
	if priceCents < 0 || priceCents > model.MaxUnitPriceCents {
		return apperrors.ErrInvalidInput
	}
	if capacity < 0 {
		return apperrors.ErrInvalidInput
	}
	return nil
}
