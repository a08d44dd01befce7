package handler

import (
	"errors"
	"log/slog"

	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(logger *slog.Logger, categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// Create handles creation of a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cat, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name, category.Type(req.Type), req.Color)
	if err != nil {
		if errors.Is(err, category.ErrInvalidCategoryType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create category", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapCategoryToResponse(cat))
}

// List retrieves all categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, mapCategoryToResponse(cat))
	}
	RespondOK(c, responses)
}

// mapCategoryToResponse maps a category entity to a category response DTO
func mapCategoryToResponse(cat *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:    cat.ID.String(),
		Name:  cat.Name,
		Type:  string(cat.Type),
		Color: cat.Color,
	}
}
