package handler

import (
	"errors"
	"eventbooking/internal/model"
	"eventbooking/internal/service"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, resolveMember gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.POST("reviews", authenticate, resolveMember, h.CreateReview)
		router.GET("reviews", authenticate, requireAdmin, h.GetReviews)
		router.DELETE("reviews/:id", authenticate, requireAdmin, h.DeleteReview)
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	principal, _ := principalFrom(c)
	member, ok := memberFrom(c)
	if !ok {
		h.handleReviewError(c, apperrors.ErrMemberResolution, "CreateReview")
		return
	}

	var req model.CreateReviewRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	review, err := h.service.Submit(c, member.ID, principal.Role, req.EventID, req.Rating, req.Comment)
	if err != nil {
		h.handleReviewError(c, err, "CreateReview")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.service.List(c)
	if err != nil {
		h.handleReviewError(c, err, "GetReviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := h.service.Delete(c, idInt); err != nil {
		h.handleReviewError(c, err, "DeleteReview")
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper functions

func (h *ReviewHandler) handleReviewError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrReviewNotFound):
		log.Warn("Review not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Review not found",
		})
	case errors.Is(err, apperrors.ErrEventNotConcluded):
		log.Warn("Event not concluded yet")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reviews open after the event has taken place",
		})
	case errors.Is(err, apperrors.ErrNoBooking):
		log.Warn("No booking for event")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A booking for this event is required to review it",
		})
	case errors.Is(err, apperrors.ErrDuplicateReview):
		log.Warn("Duplicate review")
		c.JSON(http.StatusConflict, gin.H{
			"error": "You have already reviewed this event",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrMemberResolution):
		log.Error("Member resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not resolve member profile",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
