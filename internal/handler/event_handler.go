package handler

import (
	"errors"
	"eventbooking/internal/model"
	"eventbooking/internal/service"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service       service.EventService
	reviewService service.ReviewService
}

func NewEventHandler(eventService service.EventService, reviewService service.ReviewService) *EventHandler {
	return &EventHandler{
		service:       eventService,
		reviewService: reviewService,
	}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, requireStaff gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.GetEvents)
		router.GET("events/:id", h.GetEvent)
		router.POST("events", authenticate, requireStaff, h.CreateEvent)
		router.PUT("events/:id", authenticate, requireStaff, h.UpdateEvent)
		router.DELETE("events/:id", authenticate, requireAdmin, h.DeleteEvent)
	}
}

// EventDetailResponse 明細頁回應：活動加上評論
type EventDetailResponse struct {
	*model.EventResponse
	Reviews []*model.Review `json:"reviews"`
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	var filter model.ListEventsQuery
	if err := BindQuery(c, &filter); err != nil {
		return
	}

	events, err := h.service.List(c, filter)
	if err != nil {
		h.handleEventError(c, err, "GetEvents")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.service.GetByID(c, idInt)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}

	reviews, err := h.reviewService.ListByEvent(c, idInt)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}

	c.JSON(http.StatusOK, EventDetailResponse{
		EventResponse: event,
		Reviews:       reviews,
	})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_date, expected RFC 3339"})
		return
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		VenueID:     req.VenueID,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		Capacity:    req.Capacity,
	}
	if principal, ok := principalFrom(c); ok {
		userID := principal.UserID
		event.CreatedBy = &userID
	}

	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleEventError(c, err, "CreateEvent")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	params := model.UpdateEventParams{
		Title:       req.Title,
		Description: req.Description,
		VenueID:     req.VenueID,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		Capacity:    req.Capacity,
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_date, expected RFC 3339"})
			return
		}
		params.EventDate = &eventDate
	}

	updated, err := h.service.Update(c, idInt, params, req.UpdatedAt)
	if err != nil {
		h.handleEventError(c, err, "UpdateEvent")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	if err := h.service.Delete(c, idInt); err != nil {
		h.handleEventError(c, err, "DeleteEvent")
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper functions

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrVenueNotFound):
		log.Warn("Venue not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Venue not found",
		})
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		log.Warn("Category not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		log.Warn("Concurrent modification")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Event was modified by another request, reload and retry",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
