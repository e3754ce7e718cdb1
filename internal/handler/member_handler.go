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

type MemberHandler struct {
	service service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{service: memberService}
}

func (h *MemberHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, resolveMember gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("members", authenticate, requireAdmin, h.GetMembers)
		router.POST("members", authenticate, requireAdmin, h.CreateMember)
		router.GET("members/:id", authenticate, requireAdmin, h.GetMember)
		router.PUT("members/:id", authenticate, requireAdmin, h.UpdateMember)
		router.DELETE("members/:id", authenticate, requireAdmin, h.DeleteMember)

		// 自己的檔案
		router.GET("profile", authenticate, resolveMember, h.GetProfile)
		router.PUT("profile", authenticate, resolveMember, h.UpdateProfile)
	}
}

func (h *MemberHandler) GetMembers(c *gin.Context) {
	members, err := h.service.List(c)
	if err != nil {
		h.handleMemberError(c, err, "GetMembers")
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, req)
	if err != nil {
		h.handleMemberError(c, err, "CreateMember")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	member, err := h.service.GetByID(c, idInt)
	if err != nil {
		h.handleMemberError(c, err, "GetMember")
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	var req model.UpdateMemberRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, idInt, model.UpdateMemberParams{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.handleMemberError(c, err, "UpdateMember")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if err := h.service.Delete(c, idInt); err != nil {
		h.handleMemberError(c, err, "DeleteMember")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	member, ok := memberFrom(c)
	if !ok {
		h.handleMemberError(c, apperrors.ErrMemberResolution, "GetProfile")
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	member, ok := memberFrom(c)
	if !ok {
		h.handleMemberError(c, apperrors.ErrMemberResolution, "UpdateProfile")
		return
	}

	var req model.UpdateMemberRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, member.ID, model.UpdateMemberParams{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.handleMemberError(c, err, "UpdateProfile")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Helper functions

func (h *MemberHandler) handleMemberError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrMemberNotFound):
		log.Warn("Member not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Member not found",
		})
	case errors.Is(err, apperrors.ErrMemberInUse):
		log.Warn("Member still has bookings")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Member still has bookings",
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
