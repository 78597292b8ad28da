package services

import (
	"context"
	"log"
	"math"

	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// Category filter values besides a category id.
const (
	CategoryFilterAll           = "all"
	CategoryFilterUncategorized = "uncategorized"
)

// LibraryItem is a library entry ready for display: the entry with its Book,
// its resolved categories and a display-only progress percentage.
type LibraryItem struct {
	entities.LibraryEntry
	Categories      []entities.TbrCategory `json:"categories"`
	ProgressPercent int                    `json:"progress_percent"`
}

// LibraryQuery narrows a library listing. Zero values mean no filtering.
type LibraryQuery struct {
	Status   entities.ReadingStatus
	Category string
}

// LibraryView is a composed library listing with per-status tab counts.
type LibraryView struct {
	Items  []LibraryItem                  `json:"items"`
	Counts map[entities.ReadingStatus]int `json:"counts"`
}

// Compose builds display items from entries and their resolved categories.
// Only want_to_read entries carry categories; every other entry gets an empty
// list regardless of what categoriesByEntry holds.
func Compose(entries []entities.LibraryEntry, categoriesByEntry map[string][]entities.TbrCategory) []LibraryItem {
	items := make([]LibraryItem, 0, len(entries))
	for _, entry := range entries {
		categories := []entities.TbrCategory{}
		if entry.Status == entities.StatusWantToRead {
			if resolved, ok := categoriesByEntry[entry.ID]; ok && resolved != nil {
				categories = resolved
			}
		}

		var pageCount *int
		if entry.Book != nil {
			pageCount = entry.Book.PageCount
		}

		items = append(items, LibraryItem{
			LibraryEntry:    entry,
			Categories:      categories,
			ProgressPercent: ProgressPercent(entry.CurrentPage, pageCount),
		})
	}
	return items
}

// ProgressPercent returns current/total as a whole percentage capped at 100.
// Without a known page count it is 0.
func ProgressPercent(currentPage int, pageCount *int) int {
	if pageCount == nil || *pageCount <= 0 || currentPage <= 0 {
		return 0
	}
	percent := int(math.Round(float64(currentPage) / float64(*pageCount) * 100))
	if percent > 100 {
		return 100
	}
	return percent
}

// FilterByCategory keeps want_to_read items matching filter. Items in other
// statuses are kept as they are.
func FilterByCategory(items []LibraryItem, filter string) []LibraryItem {
	if filter == "" || filter == CategoryFilterAll {
		return items
	}

	filtered := make([]LibraryItem, 0, len(items))
	for _, item := range items {
		if item.Status != entities.StatusWantToRead {
			filtered = append(filtered, item)
			continue
		}
		if filter == CategoryFilterUncategorized {
			if len(item.Categories) == 0 {
				filtered = append(filtered, item)
			}
			continue
		}
		for _, c := range item.Categories {
			if c.ID == filter {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// LibraryViewService assembles library listings from the entry store and the
// category resolver.
type LibraryViewService struct {
	entries    LibraryStore
	categories CategoryResolver
}

// NewLibraryViewService creates a LibraryViewService.
func NewLibraryViewService(entries LibraryStore, categories CategoryResolver) *LibraryViewService {
	return &LibraryViewService{entries: entries, categories: categories}
}

// Library returns the user's composed library. A failure to resolve
// categories is logged and the affected items get empty category lists.
func (s *LibraryViewService) Library(ctx context.Context, userID string, query LibraryQuery) (*LibraryView, error) {
	var (
		entries []entities.LibraryEntry
		err     error
	)
	switch {
	case query.Status == "":
		entries, err = s.entries.ListEntries(ctx, userID)
	case query.Status.Valid():
		entries, err = s.entries.ListEntriesByStatus(ctx, userID, query.Status)
	default:
		return nil, domainerrors.InvalidArgument("unknown reading status " + string(query.Status))
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.entries.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := Compose(entries, s.resolveCategories(ctx, entries))
	return &LibraryView{
		Items:  FilterByCategory(items, query.Category),
		Counts: counts,
	}, nil
}

// Item returns the composed item for one of the user's books.
func (s *LibraryViewService) Item(ctx context.Context, userID, bookID string) (*LibraryItem, bool, error) {
	entry, found, err := s.entries.GetEntry(ctx, userID, bookID)
	if err != nil || !found {
		return nil, found, err
	}

	entries := []entities.LibraryEntry{*entry}
	items := Compose(entries, s.resolveCategories(ctx, entries))
	return &items[0], true, nil
}

func (s *LibraryViewService) resolveCategories(ctx context.Context, entries []entities.LibraryEntry) map[string][]entities.TbrCategory {
	var wantToRead []string
	for _, entry := range entries {
		if entry.Status == entities.StatusWantToRead {
			wantToRead = append(wantToRead, entry.ID)
		}
	}
	if len(wantToRead) == 0 || s.categories == nil {
		return nil
	}

	resolved, err := s.categories.GetCategoriesForEntries(ctx, wantToRead)
	if err != nil {
		log.Printf("Warning: failed to resolve categories for %d entries: %v", len(wantToRead), err)
		return nil
	}
	return resolved
}
