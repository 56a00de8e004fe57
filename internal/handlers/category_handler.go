package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateNameRequest represents the request payload for creating a category or tag
type CreateNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// NameResponse represents a category or tag in the response
type NameResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateCategory resolves or creates a category by name
// @Summary     Create a category
// @Description Create a category, or return the existing one with the same name
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNameRequest true "Category name"
// @Success     201 {object} NameResponse "Category created or resolved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.ResolveOrCreate(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NameResponse{ID: category.ID, Name: category.Name})
}

// ListCategories returns all of the user's categories
// @Summary     List categories
// @Description List the authenticated user's categories, ordered by name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]NameResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]NameResponse, len(categories))
	for i, category := range categories {
		out[i] = NameResponse{ID: category.ID, Name: category.Name}
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}
