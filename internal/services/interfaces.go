package services

import (
	"context"

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/entities"
)

// LibraryStore is the part of the library entry store the services read and
// write through.
type LibraryStore interface {
	ListEntries(ctx context.Context, userID string) ([]entities.LibraryEntry, error)
	ListEntriesByStatus(ctx context.Context, userID string, status entities.ReadingStatus) ([]entities.LibraryEntry, error)
	GetEntry(ctx context.Context, userID, bookID string) (*entities.LibraryEntry, bool, error)
	AddEntry(ctx context.Context, userID, bookID string, status entities.ReadingStatus) (*entities.LibraryEntry, error)
	StatusCounts(ctx context.Context, userID string) (map[entities.ReadingStatus]int, error)
	HasBook(ctx context.Context, userID string, bookIDs []string) (map[string]bool, error)
}

// CategoryResolver resolves the categories of many entries at once.
type CategoryResolver interface {
	GetCategoriesForEntries(ctx context.Context, entryIDs []string) (map[string][]entities.TbrCategory, error)
}

// BookStore provides find-or-create access to the shared book catalog.
type BookStore interface {
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	GetOrCreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error)
}

// CatalogSearcher searches an external book catalog.
type CatalogSearcher interface {
	Search(ctx context.Context, query string) ([]catalog.Candidate, error)
	SearchByISBN(ctx context.Context, isbn string) ([]catalog.Candidate, error)
}

// CoverEnqueuer schedules a background download of a book's cover.
type CoverEnqueuer interface {
	EnqueueCoverPrefetch(ctx context.Context, bookID string) error
}

// ClubStore is the part of the clubs repository the club board needs.
type ClubStore interface {
	GetClubByInviteCode(ctx context.Context, code string) (*entities.Club, error)
	JoinClub(ctx context.Context, clubID, userID string) (*entities.ClubMember, error)
	IsMember(ctx context.Context, clubID, userID string) (bool, error)
	ListSuggestions(ctx context.Context, clubID string) ([]entities.ClubSuggestion, error)
	ListVotes(ctx context.Context, suggestionIDs []string) ([]entities.SuggestionVote, error)
	ListComments(ctx context.Context, suggestionIDs []string) ([]entities.SuggestionComment, error)
}

// ProfileStore reads user profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*entities.Profile, error)
}

// PublicNoteReader lists the notes a user shares with other readers.
type PublicNoteReader interface {
	ListPublicNotes(ctx context.Context, userID string) ([]entities.Note, error)
}
