package demo

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/database/books"
	"github.com/ruckusreads/ruckus/internal/database/categories"
	"github.com/ruckusreads/ruckus/internal/database/clubs"
	"github.com/ruckusreads/ruckus/internal/database/library"
	"github.com/ruckusreads/ruckus/internal/database/notes"
	"github.com/ruckusreads/ruckus/internal/database/profiles"
	"github.com/ruckusreads/ruckus/internal/entities"
)

// DefaultUserID owns the seeded library.
const DefaultUserID = "demo"

// clubFriendID is the second member of the seeded club.
const clubFriendID = "demo-friend"

// SeedResult counts what Seed created.
type SeedResult struct {
	Books      int
	Entries    int
	Categories int
	Notes      int
	Clubs      int
	Profiles   int
}

type seedBook struct {
	book       entities.Book
	status     entities.ReadingStatus
	page       int
	rating     int
	categories []string
	notes      []notes.NewNote
}

type seedCategory struct {
	name  string
	color string
}

var demoCategories = []seedCategory{
	{name: "Kindle", color: "blue"},
	{name: "Library Copy", color: "green"},
	{name: "On the Shelf", color: "amber"},
}

// Seed fills db with a small public-domain library for userID, a few TBR
// categories, reading notes, profiles and a book club with one suggestion.
// The schema must already be migrated.
func Seed(ctx context.Context, db *gorm.DB, userID string) (SeedResult, error) {
	var result SeedResult
	if userID == "" {
		userID = DefaultUserID
	}

	bookRepo := books.NewRepository(db)
	libraryRepo := library.NewRepository(db)
	categoryRepo := categories.NewRepository(db)
	noteRepo := notes.NewRepository(db)
	clubRepo := clubs.NewRepository(db)
	profileRepo := profiles.NewRepository(db)

	for _, p := range demoProfiles(userID) {
		if _, err := profileRepo.UpdateProfile(ctx, p.userID, p.update); err != nil {
			return result, fmt.Errorf("save profile %s: %w", p.userID, err)
		}
		result.Profiles++
	}

	categoryIDs := make(map[string]string, len(demoCategories))
	for _, c := range demoCategories {
		category, err := categoryRepo.CreateCategory(ctx, userID, categories.NewCategory{Name: c.name, Color: c.color})
		if err != nil {
			return result, fmt.Errorf("create category %s: %w", c.name, err)
		}
		categoryIDs[c.name] = category.ID
		result.Categories++
	}

	var clubPick *entities.Book
	for _, sb := range publicDomainBooks() {
		book, err := bookRepo.GetOrCreateBook(ctx, &sb.book)
		if err != nil {
			return result, fmt.Errorf("save book %s: %w", sb.book.Title, err)
		}
		result.Books++

		if sb.status == "" {
			clubPick = book
			continue
		}

		entry, err := libraryRepo.AddEntry(ctx, userID, book.ID, sb.status)
		if err != nil {
			return result, fmt.Errorf("shelve %s: %w", book.Title, err)
		}
		result.Entries++

		if sb.page > 0 {
			if _, err := libraryRepo.SetProgress(ctx, entry.ID, sb.page); err != nil {
				return result, fmt.Errorf("set progress for %s: %w", book.Title, err)
			}
		}
		if sb.status == entities.StatusFinished {
			if _, err := libraryRepo.SetStatus(ctx, entry.ID, entities.StatusFinished); err != nil {
				return result, fmt.Errorf("finish %s: %w", book.Title, err)
			}
		}
		if sb.rating > 0 {
			rating := sb.rating
			if _, err := libraryRepo.SetRating(ctx, entry.ID, &rating); err != nil {
				return result, fmt.Errorf("rate %s: %w", book.Title, err)
			}
		}

		if len(sb.categories) > 0 {
			ids := make([]string, 0, len(sb.categories))
			for _, name := range sb.categories {
				ids = append(ids, categoryIDs[name])
			}
			if err := categoryRepo.SetEntryCategories(ctx, entry.ID, ids); err != nil {
				return result, fmt.Errorf("categorize %s: %w", book.Title, err)
			}
		}

		for _, n := range sb.notes {
			if _, err := noteRepo.CreateNote(ctx, userID, entry.ID, n); err != nil {
				return result, fmt.Errorf("add note to %s: %w", book.Title, err)
			}
			result.Notes++
		}

		log.Printf("Seeded: %s (%s)", book.Title, sb.status)
	}

	if clubPick != nil {
		if err := seedClub(ctx, clubRepo, userID, clubPick); err != nil {
			return result, err
		}
		result.Clubs++
	}

	return result, nil
}

func seedClub(ctx context.Context, repo *clubs.Repository, userID string, pick *entities.Book) error {
	description := "Slow reads of the classics, one chapter a week."
	club, err := repo.CreateClub(ctx, userID, clubs.NewClub{
		Name:        "Sunday Classics",
		Description: &description,
	})
	if err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	if _, err := repo.JoinClub(ctx, club.ID, clubFriendID); err != nil {
		return fmt.Errorf("join club: %w", err)
	}

	note := "Short enough to finish in a month."
	suggestion, err := repo.SuggestBook(ctx, club.ID, clubFriendID, pick.ID, &note)
	if err != nil {
		return fmt.Errorf("suggest %s: %w", pick.Title, err)
	}
	if err := repo.Vote(ctx, suggestion.ID, userID); err != nil {
		return fmt.Errorf("vote: %w", err)
	}
	if _, err := repo.AddComment(ctx, suggestion.ID, userID, "Count me in."); err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	return nil
}

type seedProfile struct {
	userID string
	update profiles.ProfileUpdate
}

func demoProfiles(userID string) []seedProfile {
	return []seedProfile{
		{userID: userID, update: profiles.ProfileUpdate{
			DisplayName: strPtr("Demo Reader"),
			Bio:         strPtr("Working through the classics, slowly."),
		}},
		{userID: clubFriendID, update: profiles.ProfileUpdate{
			DisplayName: strPtr("Sam"),
			Bio:         strPtr("Will suggest anything under 200 pages."),
		}},
	}
}

func publicDomainBooks() []seedBook {
	return []seedBook{
		{
			book:   demoBook("OL267096W", "Meditations", "Marcus Aurelius", 180, 254, 10582869, "Stoicism", "Philosophy"),
			status: entities.StatusCurrentlyReading,
			page:   96,
			notes: []notes.NewNote{
				{Title: strPtr("Book II"), Content: "Begin the morning by saying to thyself: I shall meet with the busy-body, the ungrateful, arrogant.", PageNumber: intPtr(11)},
				{Content: "The happiness of your life depends upon the quality of your thoughts.", PageNumber: intPtr(64)},
			},
		},
		{
			book:   demoBook("OL66554W", "Pride and Prejudice", "Jane Austen", 1813, 279, 14348537, "Fiction", "Romance"),
			status: entities.StatusFinished,
			page:   279,
			rating: 5,
			notes: []notes.NewNote{
				{Title: strPtr("Summary"), Content: "Elizabeth and Darcy both have to unlearn their first impressions.", IsSummary: true},
			},
		},
		{
			book:   demoBook("OL45883W", "Frankenstein", "Mary Shelley", 1818, 280, 12356249, "Fiction", "Gothic"),
			status: entities.StatusFinished,
			page:   280,
			rating: 4,
		},
		{
			book:       demoBook("OL102749W", "Moby Dick", "Herman Melville", 1851, 635, 7222246, "Fiction", "Whaling"),
			status:     entities.StatusWantToRead,
			categories: []string{"Kindle", "On the Shelf"},
		},
		{
			book:       demoBook("OL1168083W", "Middlemarch", "George Eliot", 1871, 880, 6616497, "Fiction"),
			status:     entities.StatusWantToRead,
			categories: []string{"Library Copy"},
		},
		{
			book:   demoBook("OL20600W", "The Odyssey", "Homer", -700, 541, 12825599, "Epic poetry"),
			status: entities.StatusWantToRead,
		},
		{
			// Not shelved: becomes the club suggestion.
			book: demoBook("OL27448W", "The Time Machine", "H. G. Wells", 1895, 118, 9009316, "Science fiction"),
		},
	}
}

func demoBook(workID, title, author string, year, pages, coverID int, subjects ...string) entities.Book {
	book := entities.Book{
		OpenLibraryID: strPtr(workID),
		Title:         title,
		Authors:       []string{author},
		CoverURL:      strPtr(catalog.CoverURL(fmt.Sprint(coverID), "id", "M")),
		PageCount:     intPtr(pages),
		Subjects:      subjects,
	}
	if year > 0 {
		book.PublishYear = intPtr(year)
	}
	return book
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
