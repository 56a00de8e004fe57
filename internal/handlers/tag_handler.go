package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// TagHandler handles tag-related requests
type TagHandler struct {
	tagService services.TagServicer
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService services.TagServicer) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTag resolves or creates a tag by name
// @Summary     Create a tag
// @Description Create a tag, or return the existing one with the same name
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNameRequest true "Tag name"
// @Success     201 {object} NameResponse "Tag created or resolved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
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

	tag, err := h.tagService.ResolveOrCreate(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NameResponse{ID: tag.ID, Name: tag.Name})
}

// ListTags returns all of the user's tags
// @Summary     List tags
// @Description List the authenticated user's tags, ordered by name
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]NameResponse "Tags"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tags, err := h.tagService.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]NameResponse, len(tags))
	for i, tag := range tags {
		out[i] = NameResponse{ID: tag.ID, Name: tag.Name}
	}
	c.JSON(http.StatusOK, gin.H{"tags": out})
}
