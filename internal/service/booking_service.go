package service

import (
	"context"
	"eventbooking/internal/cache"
	"eventbooking/internal/database"
	"eventbooking/internal/model"
	"eventbooking/internal/queue"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingService interface {
	// Book 訂票工作流：過期檢查 → 快取前置過濾 → 交易內鎖定活動列、重算容量、寫入訂票
	Book(ctx context.Context, memberID int, eventID int, quantity int) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error)
	GetByID(ctx context.Context, id int) (*model.Booking, error)
}

type BookingServiceImpl struct {
	txManager     database.TxManager
	repository    repository.BookingRepository
	eventRepo     repository.EventRepository
	capacityCache cache.CapacityCache
	confirmQueue  queue.ConfirmationQueue
}

func NewBookingService(
	txManager database.TxManager,
	bookingRepository repository.BookingRepository,
	eventRepository repository.EventRepository,
	capacityCache cache.CapacityCache,
	confirmQueue queue.ConfirmationQueue,
) BookingService {
	return &BookingServiceImpl{
		txManager:     txManager,
		repository:    bookingRepository,
		eventRepo:     eventRepository,
		capacityCache: capacityCache,
		confirmQueue:  confirmQueue,
	}
}

func (s *BookingServiceImpl) Book(ctx context.Context, memberID int, eventID int, quantity int) (*model.Booking, error) {
	if memberID <= 0 {
		return nil, apperrors.ErrMemberResolution
	}
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if event.HasConcluded(now) {
		return nil, apperrors.ErrPastEvent
	}

	// 1. Redis 前置過濾：完售或不足時提早拒絕；未預熱時直接走交易。
	//    快取只能拒絕，不能放行——權威判定在下方交易內。
	reserved := false
	result, err := s.capacityCache.Reserve(ctx, eventID, quantity)
	if err != nil {
		logger.WithComponent("service").Warn("capacity cache unavailable, falling through to db",
			zap.Int("event_id", eventID), zap.Error(err))
	} else {
		switch result {
		case cache.ReserveSoldOut:
			return nil, apperrors.ErrSoldOut
		case cache.ReserveInsufficient:
			return nil, apperrors.ErrCapacityExceeded
		case cache.ReserveOK:
			reserved = true
		}
	}

	totalPrice := event.PriceCents * int64(quantity)
	if totalPrice > model.MaxTotalPriceCents {
		if reserved {
			s.rollbackReservation(eventID, quantity)
		}
		return nil, apperrors.ErrInvalidInput
	}

	booking := &model.Booking{
		TicketCode:      uuid.New(),
		BookingDate:     now,
		Quantity:        quantity,
		TotalPriceCents: totalPrice,
		Verified:        false,
		MemberID:        memberID,
		EventID:         eventID,
	}

	// 2. 權威判定：鎖定活動列後重算已售總數，再寫入訂票。
	//    同一活動的並發訂票在此序列化，確保 Σ quantity ≤ capacity。
	err = s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return err
		}

		booked, err := s.repository.SumQuantityByEventTx(ctx, tx, eventID)
		if err != nil {
			return err
		}

		remaining := Remaining(locked.Capacity, booked)
		if remaining <= 0 {
			return apperrors.ErrSoldOut
		}
		if !CanBook(remaining, quantity) {
			return apperrors.ErrCapacityExceeded
		}

		// 單價以鎖定列為準，避免與前段讀取之間的價格調整造成偏差；
		// 總價上限也要用鎖定列重驗
		booking.TotalPriceCents = locked.PriceCents * int64(quantity)
		if booking.TotalPriceCents > model.MaxTotalPriceCents {
			return apperrors.ErrInvalidInput
		}

		_, err = s.repository.CreateTx(ctx, tx, booking)
		return err
	})

	if err != nil {
		// 交易被拒或失敗：回滾快取預約（使用背景 context 確保執行）
		if reserved {
			s.rollbackReservation(eventID, quantity)
		}
		return nil, err
	}

	// 3. commit 之後才發送確認；發送失敗不影響已成立的訂票
	if err := s.confirmQueue.PublishConfirmation(ctx, booking); err != nil {
		logger.WithComponent("service").Warn("failed to publish booking confirmation",
			zap.Int("booking_id", booking.ID), zap.Error(err))
	}

	return booking, nil
}

func (s *BookingServiceImpl) rollbackReservation(eventID, quantity int) {
	if err := s.capacityCache.Release(context.Background(), eventID, quantity); err != nil {
		logger.WithComponent("service").Warn("failed to release capacity reservation",
			zap.Int("event_id", eventID), zap.Int("quantity", quantity), zap.Error(err))
	}
}

func (s *BookingServiceImpl) List(ctx context.Context) ([]*model.Booking, error) {
	return s.repository.List(ctx)
}

func (s *BookingServiceImpl) ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error) {
	return s.repository.ListByMember(ctx, memberID)
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	return s.repository.FindByID(ctx, id)
}
