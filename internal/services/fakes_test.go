package services

import (
	"context"
	"errors"

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

type fakeLibrary struct {
	entries    []entities.LibraryEntry
	counts     map[entities.ReadingStatus]int
	listErr    error
	added      []entities.LibraryEntry
	addErr     error
	shelved    map[string]bool
	lastStatus entities.ReadingStatus
}

func (f *fakeLibrary) ListEntries(_ context.Context, userID string) ([]entities.LibraryEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entities.LibraryEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLibrary) ListEntriesByStatus(ctx context.Context, userID string, status entities.ReadingStatus) ([]entities.LibraryEntry, error) {
	f.lastStatus = status
	all, err := f.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []entities.LibraryEntry
	for _, e := range all {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLibrary) GetEntry(_ context.Context, userID, bookID string) (*entities.LibraryEntry, bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.BookID == bookID {
			entry := e
			return &entry, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeLibrary) AddEntry(_ context.Context, userID, bookID string, status entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	if status == "" {
		status = entities.StatusWantToRead
	}
	entry := entities.LibraryEntry{ID: "entry-" + bookID, UserID: userID, BookID: bookID, Status: status}
	f.added = append(f.added, entry)
	return &entry, nil
}

func (f *fakeLibrary) StatusCounts(_ context.Context, _ string) (map[entities.ReadingStatus]int, error) {
	return f.counts, nil
}

func (f *fakeLibrary) HasBook(_ context.Context, _ string, bookIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range bookIDs {
		if f.shelved[id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeResolver struct {
	byEntry   map[string][]entities.TbrCategory
	err       error
	requested []string
}

func (f *fakeResolver) GetCategoriesForEntries(_ context.Context, entryIDs []string) (map[string][]entities.TbrCategory, error) {
	f.requested = append(f.requested, entryIDs...)
	if f.err != nil {
		return nil, f.err
	}
	return f.byEntry, nil
}

type fakeBooks struct {
	byOpenLibraryID map[string]*entities.Book
	created         int
}

func (f *fakeBooks) GetBookByID(_ context.Context, id string) (*entities.Book, error) {
	for _, b := range f.byOpenLibraryID {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domainerrors.NotFound("book not found")
}

func (f *fakeBooks) GetOrCreateBook(_ context.Context, book *entities.Book) (*entities.Book, error) {
	if book.OpenLibraryID != nil {
		if existing, ok := f.byOpenLibraryID[*book.OpenLibraryID]; ok {
			return existing, nil
		}
	}
	f.created++
	book.ID = "book-" + book.Title
	if book.OpenLibraryID != nil {
		f.byOpenLibraryID[*book.OpenLibraryID] = book
	}
	return book, nil
}

type fakeCatalog struct {
	candidates []catalog.Candidate
	err        error
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]catalog.Candidate, error) {
	return f.candidates, f.err
}

func (f *fakeCatalog) SearchByISBN(_ context.Context, _ string) ([]catalog.Candidate, error) {
	return f.candidates, f.err
}

type fakeCovers struct {
	enqueued []string
	err      error
}

func (f *fakeCovers) EnqueueCoverPrefetch(_ context.Context, bookID string) error {
	f.enqueued = append(f.enqueued, bookID)
	return f.err
}

type fakeClubs struct {
	clubs       map[string]*entities.Club
	members     map[string]map[string]bool
	suggestions []entities.ClubSuggestion
	votes       []entities.SuggestionVote
	comments    []entities.SuggestionComment
}

func (f *fakeClubs) GetClubByInviteCode(_ context.Context, code string) (*entities.Club, error) {
	for _, c := range f.clubs {
		if c.InviteCode == code {
			return c, nil
		}
	}
	return nil, domainerrors.NotFound("club not found")
}

func (f *fakeClubs) JoinClub(_ context.Context, clubID, userID string) (*entities.ClubMember, error) {
	if f.members[clubID] == nil {
		f.members[clubID] = map[string]bool{}
	}
	if f.members[clubID][userID] {
		return nil, domainerrors.DuplicateEntry("club member already exists")
	}
	f.members[clubID][userID] = true
	return &entities.ClubMember{ClubID: clubID, UserID: userID, Role: entities.RoleMember}, nil
}

func (f *fakeClubs) IsMember(_ context.Context, clubID, userID string) (bool, error) {
	return f.members[clubID][userID], nil
}

func (f *fakeClubs) ListSuggestions(_ context.Context, clubID string) ([]entities.ClubSuggestion, error) {
	var out []entities.ClubSuggestion
	for _, s := range f.suggestions {
		if s.ClubID == clubID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeClubs) ListVotes(_ context.Context, _ []string) ([]entities.SuggestionVote, error) {
	return f.votes, nil
}

func (f *fakeClubs) ListComments(_ context.Context, _ []string) ([]entities.SuggestionComment, error) {
	return f.comments, nil
}

type fakeProfiles struct {
	byUser map[string]*entities.Profile
	err    error
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*entities.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, domainerrors.NotFound("profile not found")
}

type fakeNotes struct {
	notes []entities.Note
}

func (f *fakeNotes) ListPublicNotes(_ context.Context, userID string) ([]entities.Note, error) {
	var out []entities.Note
	for _, n := range f.notes {
		if n.UserID == userID && !n.IsPrivate {
			out = append(out, n)
		}
	}
	return out, nil
}

var errBackend = errors.New("backend down")

var (
	_ LibraryStore     = (*fakeLibrary)(nil)
	_ CategoryResolver = (*fakeResolver)(nil)
	_ BookStore        = (*fakeBooks)(nil)
	_ CatalogSearcher  = (*fakeCatalog)(nil)
	_ CoverEnqueuer    = (*fakeCovers)(nil)
	_ ClubStore        = (*fakeClubs)(nil)
	_ ProfileStore     = (*fakeProfiles)(nil)
	_ PublicNoteReader = (*fakeNotes)(nil)
)
