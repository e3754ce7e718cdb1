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

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.Engine, authenticate gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("categories", h.GetCategories)
		router.GET("categories/:id", h.GetCategory)
		router.POST("categories", authenticate, requireAdmin, h.CreateCategory)
		router.PUT("categories/:id", authenticate, requireAdmin, h.UpdateCategory)
		router.DELETE("categories/:id", authenticate, requireAdmin, h.DeleteCategory)
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.List(c)
	if err != nil {
		h.handleCategoryError(c, err, "GetCategories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	category, err := h.service.GetByID(c, idInt)
	if err != nil {
		h.handleCategoryError(c, err, "GetCategory")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, &model.EventCategory{Name: req.Name})
	if err != nil {
		h.handleCategoryError(c, err, "CreateCategory")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var params model.UpdateCategoryParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	updated, err := h.service.Update(c, idInt, params)
	if err != nil {
		h.handleCategoryError(c, err, "UpdateCategory")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	if err := h.service.Delete(c, idInt); err != nil {
		h.handleCategoryError(c, err, "DeleteCategory")
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper functions

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		log.Warn("Category not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
	case errors.Is(err, apperrors.ErrCategoryExists):
		log.Warn("Category name already exists")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Category name already exists",
		})
	case errors.Is(err, apperrors.ErrCategoryInUse):
		log.Warn("Category still referenced by events")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Category is still referenced by events",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
