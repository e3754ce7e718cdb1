package service

import (
	"context"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
)

type CategoryService interface {
	// Create 名稱重複時回傳 ErrCategoryExists
	Create(ctx context.Context, category *model.EventCategory) (*model.EventCategory, error)
	List(ctx context.Context) ([]*model.EventCategory, error)
	GetByID(ctx context.Context, id int) (*model.EventCategory, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.EventCategory, error)
	Delete(ctx context.Context, id int) error
}

type CategoryServiceImpl struct {
	repository repository.CategoryRepository
}

func NewCategoryService(categoryRepository repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{
		repository: categoryRepository,
	}
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category *model.EventCategory) (*model.EventCategory, error) {
	return s.repository.Create(ctx, category)
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]*model.EventCategory, error) {
	return s.repository.List(ctx)
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int) (*model.EventCategory, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.EventCategory, error) {
	return s.repository.Update(ctx, id, params)
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}
