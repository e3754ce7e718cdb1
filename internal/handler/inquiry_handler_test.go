package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventbooking/config"
	"eventbooking/internal/middleware"
	"eventbooking/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInquiryTestRouter(svc *InquiryServiceMock, identity ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewInquiryHandler(svc)
	handlers := append(identity, h.CreateInquiry)
	router.POST("/api/v1/inquiries", handlers...)

	return router
}

func validInquiryRequest() model.CreateInquiryRequest {
	return model.CreateInquiryRequest{Name: "Bob", Email: "bob@example.com", Message: "parking?"}
}

func TestCreateInquiry(t *testing.T) {
	t.Run("anonymous submission has no member link", func(t *testing.T) {
		svc := new(InquiryServiceMock)
		router := setupInquiryTestRouter(svc)

		svc.On("Submit", mock.Anything, validInquiryRequest(), (*int)(nil)).
			Return(&model.Inquiry{ID: 1}, nil)

		req := createJSONHTTPRequest("POST", "/api/v1/inquiries", validInquiryRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("resolved member is linked", func(t *testing.T) {
		svc := new(InquiryServiceMock)
		router := setupInquiryTestRouter(svc, injectIdentity(memberPrincipal, testMember))

		svc.On("Submit", mock.Anything, validInquiryRequest(), mock.MatchedBy(func(id *int) bool {
			return id != nil && *id == testMember.ID
		})).Return(&model.Inquiry{ID: 2, MemberID: &testMember.ID}, nil)

		req := createJSONHTTPRequest("POST", "/api/v1/inquiries", validInquiryRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("binding failure", func(t *testing.T) {
		svc := new(InquiryServiceMock)
		router := setupInquiryTestRouter(svc)

		req := createJSONHTTPRequest("POST", "/api/v1/inquiries", map[string]string{"name": "Bob"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

// 以正式路由鏈驗證:帶 Bearer token 的公開表單會掛上解析出的會員
func TestCreateInquiryWithBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.LoadTestConfig()

	memberService := new(MemberServiceMock)
	memberService.On("EnsureProfile", mock.Anything, mock.Anything).Return(&model.Member{ID: 7}, nil)

	svc := new(InquiryServiceMock)
	svc.On("Submit", mock.Anything, validInquiryRequest(), mock.MatchedBy(func(id *int) bool {
		return id != nil && *id == 7
	})).Return(&model.Inquiry{ID: 3}, nil)

	router := gin.New()
	NewInquiryHandler(svc).RegisterRoutes(router,
		func(c *gin.Context) { c.Next() },
		middleware.OptionalIdentity(cfg, memberService),
		func(c *gin.Context) { c.Next() },
		func(c *gin.Context) { c.Next() },
	)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "auth0|abc",
		"role": "Member",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Auth.JWTSecret))
	require.NoError(t, err)

	req := createJSONHTTPRequest("POST", "/api/v1/inquiries", validInquiryRequest())
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}
