package handler

import (
	"eventbooking/internal/model"
	"eventbooking/internal/service"
	"eventbooking/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InquiryHandler struct {
	service service.InquiryService
}

func NewInquiryHandler(inquiryService service.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: inquiryService}
}

func (h *InquiryHandler) RegisterRoutes(r *gin.Engine, rateLimit gin.HandlerFunc, optionalIdentity gin.HandlerFunc, authenticate gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.POST("inquiries", rateLimit, optionalIdentity, h.CreateInquiry)
		router.GET("inquiries", authenticate, requireAdmin, h.GetInquiries)
	}
}

func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var req model.CreateInquiryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	// 表單公開；OptionalIdentity 有解析出會員時才掛連結
	var memberID *int
	if member, ok := memberFrom(c); ok {
		memberID = &member.ID
	}

	inquiry, err := h.service.Submit(c, req, memberID)
	if err != nil {
		h.handleInquiryError(c, err, "CreateInquiry")
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) GetInquiries(c *gin.Context) {
	inquiries, err := h.service.List(c)
	if err != nil {
		h.handleInquiryError(c, err, "GetInquiries")
		return
	}

	c.JSON(http.StatusOK, inquiries)
}

// Helper functions

func (h *InquiryHandler) handleInquiryError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err)).Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
