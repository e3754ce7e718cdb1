package service

import (
	"context"
	"errors"
	"eventbooking/internal/model"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"strings"
)

// placeholderPhone 自動補建檔案時使用的佔位電話
const placeholderPhone = "0000000000"

type MemberService interface {
	// EnsureProfile 冪等解析呼叫者的會員檔案：不存在時自動補建佔位檔案
	EnsureProfile(ctx context.Context, principal model.Principal) (*model.Member, error)
	// Create 後台手動建檔，不連結外部身分
	Create(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error)
	List(ctx context.Context) ([]*model.Member, error)
	GetByID(ctx context.Context, id int) (*model.Member, error)
	Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error)
	Delete(ctx context.Context, id int) error
}

type MemberServiceImpl struct {
	repository repository.MemberRepository
}

func NewMemberService(memberRepository repository.MemberRepository) MemberService {
	return &MemberServiceImpl{
		repository: memberRepository,
	}
}

func (s *MemberServiceImpl) EnsureProfile(ctx context.Context, principal model.Principal) (*model.Member, error) {
	if principal.UserID == "" {
		return nil, apperrors.ErrMemberResolution
	}

	member, err := s.repository.FindByUserID(ctx, principal.UserID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, apperrors.ErrMemberNotFound) {
		return nil, err
	}

	// 補建佔位檔案。並發下 upsert 為 no-op，之後重查必定命中
	userID := principal.UserID
	placeholder := &model.Member{
		FullName: placeholderName(principal),
		Email:    principal.Email,
		Phone:    placeholderPhone,
		UserID:   &userID,
	}
	if err := s.repository.UpsertByUserID(ctx, placeholder); err != nil {
		return nil, err
	}

	return s.repository.FindByUserID(ctx, principal.UserID)
}

// placeholderName 優先用 token 內的名字，否則取 email 的 local-part
func placeholderName(principal model.Principal) string {
	if principal.Name != "" {
		return principal.Name
	}
	if at := strings.Index(principal.Email, "@"); at > 0 {
		return principal.Email[:at]
	}
	return principal.Email
}

func (s *MemberServiceImpl) Create(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error) {
	return s.repository.Create(ctx, &model.Member{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
}

func (s *MemberServiceImpl) List(ctx context.Context) ([]*model.Member, error) {
	return s.repository.List(ctx)
}

func (s *MemberServiceImpl) GetByID(ctx context.Context, id int) (*model.Member, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *MemberServiceImpl) Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error) {
	return s.repository.Update(ctx, id, params)
}

func (s *MemberServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}
