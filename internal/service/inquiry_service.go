package service

import (
	"context"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	"time"
)

type InquiryService interface {
	// Submit 公開聯絡表單；已登入呼叫者可選擇性掛上會員連結
	Submit(ctx context.Context, req model.CreateInquiryRequest, memberID *int) (*model.Inquiry, error)
	List(ctx context.Context) ([]*model.Inquiry, error)
}

type InquiryServiceImpl struct {
	repository repository.InquiryRepository
	now        func() time.Time
}

func NewInquiryService(inquiryRepository repository.InquiryRepository) *InquiryServiceImpl {
	return &InquiryServiceImpl{
		repository: inquiryRepository,
		now:        time.Now,
	}
}

func (s *InquiryServiceImpl) Submit(ctx context.Context, req model.CreateInquiryRequest, memberID *int) (*model.Inquiry, error) {
	inquiry := &model.Inquiry{
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		InquiryDate: s.now(),
		MemberID:    memberID,
	}
	return s.repository.Create(ctx, inquiry)
}

func (s *InquiryServiceImpl) List(ctx context.Context) ([]*model.Inquiry, error) {
	return s.repository.List(ctx)
}
