package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/database/categories"
	"github.com/ruckusreads/ruckus/internal/entities"
)

// CategoryStore defines database operations for TBR category management.
type CategoryStore interface {
	ListCategoriesWithCounts(ctx context.Context, userID string) ([]categories.CategoryWithCount, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*entities.TbrCategory, error)
	CreateCategory(ctx context.Context, userID string, input categories.NewCategory) (*entities.TbrCategory, error)
	UpdateCategory(ctx context.Context, categoryID string, update categories.CategoryUpdate) (*entities.TbrCategory, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	ReorderCategories(ctx context.Context, userID string, orderedIDs []string) error
	GetCategoryCounts(ctx context.Context, userID string) (map[string]int, error)
}

type CategoriesController struct {
	store CategoryStore
}

func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

// List returns the user's categories in display order with book counts.
// GET /api/categories
func (cc *CategoriesController) List(c *gin.Context) {
	result, err := cc.store.ListCategoriesWithCounts(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Counts returns category id -> assigned entry count.
// GET /api/categories/counts
func (cc *CategoriesController) Counts(c *gin.Context) {
	counts, err := cc.store.GetCategoryCounts(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondError(c, err, "category counts")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Create adds a category after the user's last one.
// POST /api/categories
func (cc *CategoriesController) Create(c *gin.Context) {
	var req categories.NewCategory
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.store.CreateCategory(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		respondError(c, err, "create category")
		return
	}
	respondCreated(c, category)
}

// Update renames, recolors or moves a category.
// PATCH /api/categories/:id
func (cc *CategoriesController) Update(c *gin.Context) {
	category, ok := cc.load(c)
	if !ok {
		return
	}

	var req categories.CategoryUpdate
	if !bindJSON(c, &req) {
		return
	}

	updated, err := cc.store.UpdateCategory(c.Request.Context(), category.ID, req)
	if err != nil {
		respondError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a category. Entries it was assigned to are kept.
// DELETE /api/categories/:id
func (cc *CategoriesController) Delete(c *gin.Context) {
	category, ok := cc.load(c)
	if !ok {
		return
	}

	if err := cc.store.DeleteCategory(c.Request.Context(), category.ID); err != nil {
		respondError(c, err, "delete category")
		return
	}
	respondSuccess(c, "category deleted")
}

// Reorder writes the given order as the new sort positions.
// PUT /api/categories/order
func (cc *CategoriesController) Reorder(c *gin.Context) {
	var req struct {
		CategoryIDs []string `json:"category_ids"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := GetUserID(c)
	if err := cc.store.ReorderCategories(ctx, userID, req.CategoryIDs); err != nil {
		respondError(c, err, "reorder categories")
		return
	}

	result, err := cc.store.ListCategoriesWithCounts(ctx, userID)
	if err != nil {
		respondError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, result)
}

// load fetches a category owned by the acting user.
func (cc *CategoriesController) load(c *gin.Context) (*entities.TbrCategory, bool) {
	id, ok := requireParam(c, "id")
	if !ok {
		return nil, false
	}

	category, err := cc.store.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get category")
		return nil, false
	}
	if category.UserID != GetUserID(c) {
		respondNotFound(c, "category")
		return nil, false
	}
	return category, true
}
