package services

import (
	"context"
	"errors"

	"github.com/ruckusreads/ruckus/internal/database/profiles"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// SuggestionView is a club suggestion as seen by one member.
type SuggestionView struct {
	entities.ClubSuggestion
	VoteCount    int                          `json:"vote_count"`
	UserHasVoted bool                         `json:"user_has_voted"`
	InLibrary    bool                         `json:"in_library"`
	Comments     []entities.SuggestionComment `json:"comments"`
}

// MemberProfileView is what a club member sees of another member: their
// profile, what they are reading and have finished, and their public notes.
type MemberProfileView struct {
	Profile          *entities.Profile       `json:"profile"`
	CurrentlyReading []entities.LibraryEntry `json:"currently_reading"`
	Finished         []entities.LibraryEntry `json:"finished"`
	Notes            []entities.Note         `json:"notes"`
	BookCount        int                     `json:"book_count"`
	FinishedCount    int                     `json:"finished_count"`
	NoteCount        int                     `json:"note_count"`
}

// ClubBoard assembles the suggestion board of a club and its member pages.
type ClubBoard struct {
	clubs    ClubStore
	library  LibraryStore
	profiles ProfileStore
	notes    PublicNoteReader
}

// NewClubBoard creates a ClubBoard.
func NewClubBoard(clubs ClubStore, library LibraryStore, profiles ProfileStore, notes PublicNoteReader) *ClubBoard {
	return &ClubBoard{clubs: clubs, library: library, profiles: profiles, notes: notes}
}

// JoinByInviteCode adds the user to the club owning code.
func (b *ClubBoard) JoinByInviteCode(ctx context.Context, code, userID string) (*entities.Club, error) {
	if code == "" {
		return nil, domainerrors.InvalidArgument("invite code is required")
	}
	club, err := b.clubs.GetClubByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if _, err := b.clubs.JoinClub(ctx, club.ID, userID); err != nil {
		return nil, err
	}
	return club, nil
}

// Suggestions returns the club's suggestions with vote totals, the viewer's
// own vote, comments and whether the viewer already shelves each book. Only
// members may see them.
func (b *ClubBoard) Suggestions(ctx context.Context, clubID, userID string) ([]SuggestionView, error) {
	member, err := b.clubs.IsMember(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainerrors.Forbidden("only club members can see suggestions")
	}

	suggestions, err := b.clubs.ListSuggestions(ctx, clubID)
	if err != nil {
		return nil, err
	}
	views := make([]SuggestionView, 0, len(suggestions))
	if len(suggestions) == 0 {
		return views, nil
	}

	suggestionIDs := make([]string, 0, len(suggestions))
	bookIDs := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		suggestionIDs = append(suggestionIDs, s.ID)
		bookIDs = append(bookIDs, s.BookID)
	}

	votes, err := b.clubs.ListVotes(ctx, suggestionIDs)
	if err != nil {
		return nil, err
	}
	comments, err := b.clubs.ListComments(ctx, suggestionIDs)
	if err != nil {
		return nil, err
	}
	shelved, err := b.library.HasBook(ctx, userID, bookIDs)
	if err != nil {
		return nil, err
	}

	voteCounts := make(map[string]int, len(suggestions))
	voted := make(map[string]bool)
	for _, v := range votes {
		voteCounts[v.SuggestionID]++
		if v.UserID == userID {
			voted[v.SuggestionID] = true
		}
	}
	commentsBySuggestion := make(map[string][]entities.SuggestionComment)
	for _, c := range comments {
		commentsBySuggestion[c.SuggestionID] = append(commentsBySuggestion[c.SuggestionID], c)
	}

	for _, s := range suggestions {
		thread := commentsBySuggestion[s.ID]
		if thread == nil {
			thread = []entities.SuggestionComment{}
		}
		views = append(views, SuggestionView{
			ClubSuggestion: s,
			VoteCount:      voteCounts[s.ID],
			UserHasVoted:   voted[s.ID],
			InLibrary:      shelved[s.BookID],
			Comments:       thread,
		})
	}
	return views, nil
}

// MemberProfile shows memberID's reading to viewerID. Both must belong to the
// club. Private notes are never included.
func (b *ClubBoard) MemberProfile(ctx context.Context, clubID, viewerID, memberID string) (*MemberProfileView, error) {
	viewerIsMember, err := b.clubs.IsMember(ctx, clubID, viewerID)
	if err != nil {
		return nil, err
	}
	if !viewerIsMember {
		return nil, domainerrors.Forbidden("only club members can see member profiles")
	}
	if memberID != viewerID {
		isMember, err := b.clubs.IsMember(ctx, clubID, memberID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, domainerrors.NotFound("club member not found")
		}
	}

	profile, err := b.profiles.GetProfile(ctx, memberID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		profile = profiles.Default(memberID)
	} else if err != nil {
		return nil, err
	}

	reading, err := b.library.ListEntriesByStatus(ctx, memberID, entities.StatusCurrentlyReading)
	if err != nil {
		return nil, err
	}
	finished, err := b.library.ListEntriesByStatus(ctx, memberID, entities.StatusFinished)
	if err != nil {
		return nil, err
	}
	counts, err := b.library.StatusCounts(ctx, memberID)
	if err != nil {
		return nil, err
	}
	notes, err := b.notes.ListPublicNotes(ctx, memberID)
	if err != nil {
		return nil, err
	}

	view := &MemberProfileView{
		Profile:          profile,
		CurrentlyReading: nonNilEntries(reading),
		Finished:         nonNilEntries(finished),
		Notes:            notes,
		FinishedCount:    len(finished),
		NoteCount:        len(notes),
	}
	if view.Notes == nil {
		view.Notes = []entities.Note{}
	}
	for _, n := range counts {
		view.BookCount += n
	}
	return view, nil
}

func nonNilEntries(entries []entities.LibraryEntry) []entities.LibraryEntry {
	if entries == nil {
		return []entities.LibraryEntry{}
	}
	return entries
}
