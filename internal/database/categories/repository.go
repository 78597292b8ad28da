// Package categories provides database operations for TBR categories and
// their assignment to library entries.
//
// This package implements the CategoryStore interface defined in
// internal/http/categories.go and the CategoryResolver used by the library
// view service.
//
// # Assignment replacement
//
// SetEntryCategories replaces an entry's whole assignment set inside one
// transaction. Readers never see the intermediate empty set, and a failed
// insert rolls the entry back to its previous categories.
//
// # Sort positions
//
// A new category gets max(sort_order)+1 for its user, read and written in the
// same transaction. Listing breaks equal positions by created_at.
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	kindle, err := repo.CreateCategory(ctx, userID, categories.NewCategory{Name: "Kindle", Color: "blue"})
//	err = repo.SetEntryCategories(ctx, entryID, []string{kindle.ID})
package categories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
	"github.com/ruckusreads/ruckus/internal/validation"
)

const resource = "category"

// NewCategory holds the fields needed to create a category.
type NewCategory struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,max=32"`
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color     *string `json:"color" validate:"omitempty,min=1,max=32"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// CategoryWithCount is a category together with the number of entries
// assigned to it.
type CategoryWithCount struct {
	entities.TbrCategory
	BookCount int `json:"book_count"`
}

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns a user's categories ordered by sort position.
func (r *Repository) ListCategories(ctx context.Context, userID string) ([]entities.TbrCategory, error) {
	categories := []entities.TbrCategory{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC, created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (r *Repository) GetCategoryByID(ctx context.Context, categoryID string) (*entities.TbrCategory, error) {
	var category entities.TbrCategory
	if err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &category, nil
}

// CreateCategory appends a category after the user's current last one.
func (r *Repository) CreateCategory(ctx context.Context, userID string, input NewCategory) (*entities.TbrCategory, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	category := &entities.TbrCategory{
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		err := tx.Model(&entities.TbrCategory{}).
			Select("COALESCE(MAX(sort_order), -1)").
			Where("user_id = ?", userID).
			Row().Scan(&maxOrder)
		if err != nil {
			return err
		}
		category.SortOrder = maxOrder + 1
		return tx.Create(category).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return category, nil
}

// UpdateCategory applies a partial update and returns the stored category.
func (r *Repository) UpdateCategory(ctx context.Context, categoryID string, update CategoryUpdate) (*entities.TbrCategory, error) {
	if err := validation.Validate(update); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.SortOrder != nil {
		updates["sort_order"] = *update.SortOrder
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&entities.TbrCategory{}).
			Where("id = ?", categoryID).
			Updates(updates)
		if err := database.NotFoundIfNoRows(result, resource); err != nil {
			return nil, err
		}
	}

	return r.GetCategoryByID(ctx, categoryID)
}

// DeleteCategory removes a category and every assignment of it.
// Library entries are not touched.
func (r *Repository) DeleteCategory(ctx context.Context, categoryID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&entities.CategoryAssignment{}).Error; err != nil {
			return database.TranslateError(err, "category assignment")
		}
		result := tx.Where("id = ?", categoryID).Delete(&entities.TbrCategory{})
		return database.NotFoundIfNoRows(result, resource)
	})
}

// ReorderCategories writes positions 0..n-1 in the given order.
// Every id must belong to the user.
func (r *Repository) ReorderCategories(ctx context.Context, userID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			result := tx.Model(&entities.TbrCategory{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("sort_order", position)
			if err := database.NotFoundIfNoRows(result, resource); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetEntryCategories replaces the entry's assignment set with categoryIDs.
// Duplicate ids are collapsed. An empty slice clears the set.
func (r *Repository) SetEntryCategories(ctx context.Context, entryID string, categoryIDs []string) error {
	ids := dedupe(categoryIDs)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry entities.LibraryEntry
		if err := tx.Select("id", "user_id").Where("id = ?", entryID).First(&entry).Error; err != nil {
			return database.TranslateError(err, "library entry")
		}

		if len(ids) > 0 {
			var owned int64
			err := tx.Model(&entities.TbrCategory{}).
				Where("id IN ? AND user_id = ?", ids, entry.UserID).
				Count(&owned).Error
			if err != nil {
				return database.TranslateError(err, resource)
			}
			if int(owned) != len(ids) {
				return domainerrors.NotFound(fmt.Sprintf("%d of %d categories not found for this user", len(ids)-int(owned), len(ids)))
			}
		}

		if err := tx.Where("library_entry_id = ?", entryID).Delete(&entities.CategoryAssignment{}).Error; err != nil {
			return database.TranslateError(err, "category assignment")
		}
		if len(ids) == 0 {
			return nil
		}

		assignments := make([]entities.CategoryAssignment, 0, len(ids))
		for _, id := range ids {
			assignments = append(assignments, entities.CategoryAssignment{
				LibraryEntryID: entryID,
				CategoryID:     id,
			})
		}
		if err := tx.Omit("LibraryEntry", "Category").Create(&assignments).Error; err != nil {
			return database.TranslateError(err, "category assignment")
		}
		return nil
	})
}

// GetEntryCategories returns the categories assigned to one entry.
func (r *Repository) GetEntryCategories(ctx context.Context, entryID string) ([]entities.TbrCategory, error) {
	categories := []entities.TbrCategory{}
	err := r.db.WithContext(ctx).
		Select("tbr_categories.*").
		Joins("JOIN category_assignments ON category_assignments.category_id = tbr_categories.id").
		Where("category_assignments.library_entry_id = ?", entryID).
		Order("tbr_categories.sort_order ASC, tbr_categories.created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return categories, nil
}

// GetCategoriesForEntries resolves categories for many entries in one query.
// Entries without categories are absent from the result.
func (r *Repository) GetCategoriesForEntries(ctx context.Context, entryIDs []string) (map[string][]entities.TbrCategory, error) {
	byEntry := make(map[string][]entities.TbrCategory, len(entryIDs))
	if len(entryIDs) == 0 {
		return byEntry, nil
	}

	var assignments []entities.CategoryAssignment
	err := r.db.WithContext(ctx).
		Select("category_assignments.*").
		Preload("Category").
		Joins("JOIN tbr_categories ON tbr_categories.id = category_assignments.category_id").
		Where("category_assignments.library_entry_id IN ?", entryIDs).
		Order("tbr_categories.sort_order ASC, tbr_categories.created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}

	for _, a := range assignments {
		if a.Category == nil {
			continue
		}
		byEntry[a.LibraryEntryID] = append(byEntry[a.LibraryEntryID], *a.Category)
	}
	return byEntry, nil
}

// GetCategoryCounts returns, for each of the user's categories, how many
// entries are assigned to it. Assignment rows are fetched and counted in
// memory.
func (r *Repository) GetCategoryCounts(ctx context.Context, userID string) (map[string]int, error) {
	var categoryIDs []string
	err := r.db.WithContext(ctx).
		Model(&entities.TbrCategory{}).
		Where("user_id = ?", userID).
		Pluck("id", &categoryIDs).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}

	counts := make(map[string]int, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}
	for _, id := range categoryIDs {
		counts[id] = 0
	}

	var assigned []string
	err = r.db.WithContext(ctx).
		Model(&entities.CategoryAssignment{}).
		Where("category_id IN ?", categoryIDs).
		Pluck("category_id", &assigned).Error
	if err != nil {
		return nil, database.TranslateError(err, "category assignment")
	}
	for _, id := range assigned {
		counts[id]++
	}
	return counts, nil
}

// ListCategoriesWithCounts combines ListCategories and GetCategoryCounts.
func (r *Repository) ListCategoriesWithCounts(ctx context.Context, userID string) ([]CategoryWithCount, error) {
	categories, err := r.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := r.GetCategoryCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryWithCount{TbrCategory: c, BookCount: counts[c.ID]})
	}
	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
