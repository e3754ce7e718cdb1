package service

import (
	"context"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"time"
)

type ReviewService interface {
	// Submit 評論資格閘門。規則（單一入口，取代原系統兩套不一致的流程）：
	//   1. 活動必須已結束
	//   2. 會員必須訂過該活動（Admin 豁免）
	//   3. 同一會員對同一活動至多一則評論（Admin 不豁免）
	Submit(ctx context.Context, memberID int, role model.Role, eventID int, rating int, comment string) (*model.Review, error)
	List(ctx context.Context) ([]*model.Review, error)
	ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error)
	Delete(ctx context.Context, id int) error
}

type ReviewServiceImpl struct {
	repository  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	now         func() time.Time
}

func NewReviewService(
	reviewRepository repository.ReviewRepository,
	bookingRepository repository.BookingRepository,
	eventRepository repository.EventRepository,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repository:  reviewRepository,
		bookingRepo: bookingRepository,
		eventRepo:   eventRepository,
		now:         time.Now,
	}
}

func (s *ReviewServiceImpl) Submit(ctx context.Context, memberID int, role model.Role, eventID int, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidInput
	}
	if comment == "" || len(comment) > model.MaxReviewCommentLen {
		return nil, apperrors.ErrInvalidInput
	}
	if memberID <= 0 {
		return nil, apperrors.ErrMemberResolution
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !event.HasConcluded(now) {
		return nil, apperrors.ErrEventNotConcluded
	}

	if !role.IsAdmin() {
		hasBooked, err := s.bookingRepo.ExistsByMemberAndEvent(ctx, memberID, eventID)
		if err != nil {
			return nil, err
		}
		if !hasBooked {
			return nil, apperrors.ErrNoBooking
		}
	}

	exists, err := s.repository.ExistsByMemberAndEvent(ctx, memberID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &model.Review{
		Comment:    comment,
		Rating:     rating,
		ReviewDate: now,
		MemberID:   memberID,
		EventID:    eventID,
	}

	return s.repository.Create(ctx, review)
}

func (s *ReviewServiceImpl) List(ctx context.Context) ([]*model.Review, error) {
	return s.repository.List(ctx)
}

func (s *ReviewServiceImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	return s.repository.ListByEvent(ctx, eventID)
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}
