package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"eventbooking/internal/middleware"
	"eventbooking/internal/model"
	"eventbooking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func createJSONHTTPRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// injectIdentity 測試用：略過 JWT 驗證，直接塞入 principal 與 member
func injectIdentity(principal model.Principal, member *model.Member) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextPrincipalKey, principal)
		if member != nil {
			c.Set(middleware.ContextMemberKey, member)
		}
		c.Next()
	}
}

// Service mocks

type BookingServiceMock struct {
	mock.Mock
}

func (m *BookingServiceMock) Book(ctx context.Context, memberID int, eventID int, quantity int) (*model.Booking, error) {
	args := m.Called(ctx, memberID, eventID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) List(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) ListByMember(ctx context.Context, memberID int) ([]*model.Booking, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

type VerificationServiceMock struct {
	mock.Mock
}

func (m *VerificationServiceMock) Lookup(ctx context.Context, code *uuid.UUID, legacyID *int) (*service.CheckInResult, error) {
	args := m.Called(ctx, code, legacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckInResult), args.Error(1)
}

func (m *VerificationServiceMock) MarkVerified(ctx context.Context, bookingID int) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) Submit(ctx context.Context, memberID int, role model.Role, eventID int, rating int, comment string) (*model.Review, error) {
	args := m.Called(ctx, memberID, role, eventID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *ReviewServiceMock) List(ctx context.Context) ([]*model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *ReviewServiceMock) ListByEvent(ctx context.Context, eventID int) ([]*model.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *ReviewServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type EventServiceMock struct {
	mock.Mock
}

func (m *EventServiceMock) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) List(ctx context.Context, filter model.ListEventsQuery) ([]*model.EventResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventResponse), args.Error(1)
}

func (m *EventServiceMock) GetByID(ctx context.Context, id int) (*model.EventResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventResponse), args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, id int, params model.UpdateEventParams, expectedUpdatedAt time.Time) (*model.Event, error) {
	args := m.Called(ctx, id, params, expectedUpdatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InquiryServiceMock struct {
	mock.Mock
}

func (m *InquiryServiceMock) Submit(ctx context.Context, req model.CreateInquiryRequest, memberID *int) (*model.Inquiry, error) {
	args := m.Called(ctx, req, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *InquiryServiceMock) List(ctx context.Context) ([]*model.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inquiry), args.Error(1)
}

type MemberServiceMock struct {
	mock.Mock
}

func (m *MemberServiceMock) EnsureProfile(ctx context.Context, principal model.Principal) (*model.Member, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberServiceMock) Create(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberServiceMock) List(ctx context.Context) ([]*model.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Member), args.Error(1)
}

func (m *MemberServiceMock) GetByID(ctx context.Context, id int) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberServiceMock) Update(ctx context.Context, id int, params model.UpdateMemberParams) (*model.Member, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MemberServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
