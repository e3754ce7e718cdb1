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
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service             service.BookingService
	verificationService service.VerificationService
}

func NewBookingHandler(bookingService service.BookingService, verificationService service.VerificationService) *BookingHandler {
	return &BookingHandler{
		service:             bookingService,
		verificationService: verificationService,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, resolveMember gin.HandlerFunc, requireVerifier gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("bookings", authenticate, resolveMember, h.GetBookings)
		router.POST("bookings", authenticate, resolveMember, h.CreateBooking)
		// tickets/:id 而非 bookings/:id/ticket：避免與 bookings/checkin 的路由樹衝突
		router.GET("tickets/:id", authenticate, resolveMember, h.GetTicket)
		router.POST("bookings/verify", authenticate, requireVerifier, h.VerifyBooking)
		router.GET("bookings/checkin", authenticate, requireVerifier, h.CheckIn)
	}
}

// GetBookings Admin 看全部，其他角色只看自己的
func (h *BookingHandler) GetBookings(c *gin.Context) {
	principal, _ := principalFrom(c)
	member, ok := memberFrom(c)
	if !ok {
		h.handleBookingError(c, apperrors.ErrMemberResolution, "GetBookings")
		return
	}

	var (
		bookings []*model.Booking
		err      error
	)
	if principal.Role.IsAdmin() {
		bookings, err = h.service.List(c)
	} else {
		bookings, err = h.service.ListByMember(c, member.ID)
	}
	if err != nil {
		h.handleBookingError(c, err, "GetBookings")
		return
	}

	responses := make([]*model.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, model.NewBookingResponse(booking))
	}

	c.JSON(http.StatusOK, responses)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	member, ok := memberFrom(c)
	if !ok {
		h.handleBookingError(c, apperrors.ErrMemberResolution, "CreateBooking")
		return
	}

	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.Book(c, member.ID, req.EventID, req.Quantity)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	c.JSON(http.StatusCreated, model.NewBookingResponse(booking))
}

// GetTicket 票券明細：本人或 Admin
func (h *BookingHandler) GetTicket(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	principal, _ := principalFrom(c)
	member, ok := memberFrom(c)
	if !ok {
		h.handleBookingError(c, apperrors.ErrMemberResolution, "GetTicket")
		return
	}

	booking, err := h.service.GetByID(c, idInt)
	if err != nil {
		h.handleBookingError(c, err, "GetTicket")
		return
	}

	if booking.MemberID != member.ID && !principal.Role.IsAdmin() {
		h.handleBookingError(c, apperrors.ErrForbidden, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, model.NewBookingResponse(booking))
}

func (h *BookingHandler) VerifyBooking(c *gin.Context) {
	var req model.VerifyBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.verificationService.MarkVerified(c, req.BookingID); err != nil {
		h.handleBookingError(c, err, "VerifyBooking")
		return
	}

	c.Status(http.StatusOK)
}

// CheckIn 入場查驗：query 參數 code（ticket code）優先，舊式 id 其次
func (h *BookingHandler) CheckIn(c *gin.Context) {
	var (
		code     *uuid.UUID
		legacyID *int
	)

	if raw := c.Query("code"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket code"})
			return
		}
		code = &parsed
	}
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
			return
		}
		legacyID = &parsed
	}

	result, err := h.verificationService.Lookup(c, code, legacyID)
	if err != nil {
		h.handleBookingError(c, err, "CheckIn")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	case errors.Is(err, apperrors.ErrPastEvent):
		log.Warn("Event already concluded")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Event has already taken place",
		})
	case errors.Is(err, apperrors.ErrSoldOut):
		log.Warn("Sold out")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Event is sold out",
		})
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		log.Warn("Capacity exceeded")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Not enough remaining seats",
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
