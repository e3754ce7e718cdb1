package service

import (
	"context"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
)

type VenueService interface {
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	List(ctx context.Context) ([]*model.Venue, error)
	GetByID(ctx context.Context, id int) (*model.Venue, error)
	Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error)
	// Delete 仍有活動引用該場地時回傳 ErrVenueInUse
	Delete(ctx context.Context, id int) error
}

type VenueServiceImpl struct {
	repository repository.VenueRepository
}

func NewVenueService(venueRepository repository.VenueRepository) VenueService {
	return &VenueServiceImpl{
		repository: venueRepository,
	}
}

func (s *VenueServiceImpl) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	return s.repository.Create(ctx, venue)
}

func (s *VenueServiceImpl) List(ctx context.Context) ([]*model.Venue, error) {
	return s.repository.List(ctx)
}

func (s *VenueServiceImpl) GetByID(ctx context.Context, id int) (*model.Venue, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *VenueServiceImpl) Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error) {
	return s.repository.Update(ctx, id, params)
}

func (s *VenueServiceImpl) Delete(ctx context.Context, id int) error {
	// 先查引用數給出明確錯誤；repository 的條件刪除仍會攔截並發間隙
	count, err := s.repository.CountEvents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrVenueInUse
	}
	return s.repository.Delete(ctx, id)
}
