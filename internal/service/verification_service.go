package service

import (
	"context"
	"errors"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"time"

	"github.com/google/uuid"
)

// CheckInResult 入場查驗結果：狀態與（若找到）訂票明細
type CheckInResult struct {
	Status  model.TicketStatus `json:"status"`
	Booking *model.Booking     `json:"booking,omitempty"`
}

type VerificationService interface {
	// Lookup 查驗票券：優先以 ticket code，退回舊式序號 ID。
	// 兩者皆空回傳 ErrInvalidInput；查無訂票不是錯誤，狀態為 Invalid。
	Lookup(ctx context.Context, code *uuid.UUID, legacyID *int) (*CheckInResult, error)
	// MarkVerified 標記訂票已驗證；冪等，無反向轉換
	MarkVerified(ctx context.Context, bookingID int) error
}

type VerificationServiceImpl struct {
	repository repository.BookingRepository
	// now 可注入以便測試
	now func() time.Time
}

func NewVerificationService(bookingRepository repository.BookingRepository) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		repository: bookingRepository,
		now:        time.Now,
	}
}

func (s *VerificationServiceImpl) Lookup(ctx context.Context, code *uuid.UUID, legacyID *int) (*CheckInResult, error) {
	var booking *model.Booking
	var err error

	switch {
	case code != nil && *code != uuid.Nil:
		booking, err = s.repository.FindByTicketCode(ctx, *code)
	case legacyID != nil:
		booking, err = s.repository.FindByID(ctx, *legacyID)
	default:
		return nil, apperrors.ErrInvalidInput
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			return &CheckInResult{Status: model.TicketStatusInvalid}, nil
		}
		return nil, err
	}

	status := model.DeriveTicketStatus(booking, booking.Event.EventDate, s.now())
	return &CheckInResult{Status: status, Booking: booking}, nil
}

func (s *VerificationServiceImpl) MarkVerified(ctx context.Context, bookingID int) error {
	return s.repository.MarkVerified(ctx, bookingID)
}
