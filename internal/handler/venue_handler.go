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

type VenueHandler struct {
	service service.VenueService
}

func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{service: venueService}
}

func (h *VenueHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("venues", h.GetVenues)
		router.GET("venues/:id", h.GetVenue)
		router.POST("venues", authenticate, requireAdmin, h.CreateVenue)
		router.PUT("venues/:id", authenticate, requireAdmin, h.UpdateVenue)
		router.DELETE("venues/:id", authenticate, requireAdmin, h.DeleteVenue)
	}
}

func (h *VenueHandler) GetVenues(c *gin.Context) {
	venues, err := h.service.List(c)
	if err != nil {
		h.handleVenueError(c, err, "GetVenues")
		return
	}

	c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) GetVenue(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue id"})
		return
	}

	venue, err := h.service.GetByID(c, idInt)
	if err != nil {
		h.handleVenueError(c, err, "GetVenue")
		return
	}

	c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req model.CreateVenueRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, &model.Venue{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.handleVenueError(c, err, "CreateVenue")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue id"})
		return
	}

	var params model.UpdateVenueParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	updated, err := h.service.Update(c, idInt, params)
	if err != nil {
		h.handleVenueError(c, err, "UpdateVenue")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue id"})
		return
	}

	if err := h.service.Delete(c, idInt); err != nil {
		h.handleVenueError(c, err, "DeleteVenue")
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper functions

func (h *VenueHandler) handleVenueError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrVenueNotFound):
		log.Warn("Venue not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Venue not found",
		})
	case errors.Is(err, apperrors.ErrVenueInUse):
		log.Warn("Venue still referenced by events")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Venue is still referenced by events",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
