package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func newBoard() (*ClubBoard, *fakeClubs, *fakeLibrary) {
	clubs := &fakeClubs{
		clubs:   map[string]*entities.Club{"club-1": {ID: "club-1", Name: "Classics", InviteCode: "ABCD2345"}},
		members: map[string]map[string]bool{"club-1": {"alice": true, "bob": true}},
		suggestions: []entities.ClubSuggestion{
			{ID: "s1", ClubID: "club-1", BookID: "b1", SuggestedBy: "alice"},
			{ID: "s2", ClubID: "club-1", BookID: "b2", SuggestedBy: "bob"},
		},
		votes: []entities.SuggestionVote{
			{SuggestionID: "s1", UserID: "alice"},
			{SuggestionID: "s1", UserID: "bob"},
			{SuggestionID: "s2", UserID: "bob"},
		},
		comments: []entities.SuggestionComment{
			{ID: "c1", SuggestionID: "s2", UserID: "alice", Content: "Yes please"},
		},
	}
	lib := &fakeLibrary{
		shelved: map[string]bool{"b2": true},
		entries: []entities.LibraryEntry{
			{ID: "e1", UserID: "bob", BookID: "b1", Status: entities.StatusCurrentlyReading},
			{ID: "e2", UserID: "bob", BookID: "b2", Status: entities.StatusFinished},
			{ID: "e3", UserID: "bob", BookID: "b3", Status: entities.StatusFinished},
			{ID: "e4", UserID: "bob", BookID: "b4", Status: entities.StatusWantToRead},
		},
		counts: map[entities.ReadingStatus]int{
			entities.StatusCurrentlyReading: 1,
			entities.StatusFinished:         2,
			entities.StatusWantToRead:       1,
		},
	}
	bobName := "Bob"
	people := &fakeProfiles{byUser: map[string]*entities.Profile{
		"bob": {ID: "bob", Username: "bob_reads", DisplayName: &bobName},
	}}
	notes := &fakeNotes{notes: []entities.Note{
		{ID: "n1", UserID: "bob", LibraryEntryID: "e1", Content: "loved chapter one"},
		{ID: "n2", UserID: "bob", LibraryEntryID: "e2", Content: "my diary", IsPrivate: true},
		{ID: "n3", UserID: "alice", LibraryEntryID: "e9", Content: "alice's note"},
	}}
	return NewClubBoard(clubs, lib, people, notes), clubs, lib
}

func TestClubBoard_Suggestions(t *testing.T) {
	board, _, _ := newBoard()

	views, err := board.Suggestions(context.Background(), "club-1", "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "s1", views[0].ID)
	assert.Equal(t, 2, views[0].VoteCount)
	assert.True(t, views[0].UserHasVoted)
	assert.False(t, views[0].InLibrary)
	assert.NotNil(t, views[0].Comments)
	assert.Empty(t, views[0].Comments)

	assert.Equal(t, 1, views[1].VoteCount)
	assert.False(t, views[1].UserHasVoted)
	assert.True(t, views[1].InLibrary)
	require.Len(t, views[1].Comments, 1)
	assert.Equal(t, "Yes please", views[1].Comments[0].Content)
}

func TestClubBoard_Suggestions_MembersOnly(t *testing.T) {
	board, _, _ := newBoard()

	_, err := board.Suggestions(context.Background(), "club-1", "mallory")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestClubBoard_Suggestions_Empty(t *testing.T) {
	board, clubs, _ := newBoard()
	clubs.suggestions = nil

	views, err := board.Suggestions(context.Background(), "club-1", "alice")
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestClubBoard_JoinByInviteCode(t *testing.T) {
	board, clubs, _ := newBoard()
	ctx := context.Background()

	club, err := board.JoinByInviteCode(ctx, "ABCD2345", "carol")
	require.NoError(t, err)
	assert.Equal(t, "club-1", club.ID)
	assert.True(t, clubs.members["club-1"]["carol"])

	_, err = board.JoinByInviteCode(ctx, "ABCD2345", "carol")
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEntry)

	_, err = board.JoinByInviteCode(ctx, "NOPE", "carol")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = board.JoinByInviteCode(ctx, "", "carol")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
}

func TestClubBoard_MemberProfile(t *testing.T) {
	board, _, _ := newBoard()

	view, err := board.MemberProfile(context.Background(), "club-1", "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, "Bob", view.Profile.Name())
	require.Len(t, view.CurrentlyReading, 1)
	assert.Equal(t, "e1", view.CurrentlyReading[0].ID)
	assert.Len(t, view.Finished, 2)
	assert.Equal(t, 4, view.BookCount)
	assert.Equal(t, 2, view.FinishedCount)

	require.Len(t, view.Notes, 1)
	assert.Equal(t, "n1", view.Notes[0].ID)
	assert.Equal(t, 1, view.NoteCount)
}

func TestClubBoard_MemberProfile_DefaultProfile(t *testing.T) {
	board, _, _ := newBoard()

	view, err := board.MemberProfile(context.Background(), "club-1", "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", view.Profile.ID)
	assert.Equal(t, "alice", view.Profile.Username)
	assert.NotNil(t, view.CurrentlyReading)
	assert.Empty(t, view.CurrentlyReading)
	assert.Equal(t, 0, view.FinishedCount)
	require.Len(t, view.Notes, 1)
}

func TestClubBoard_MemberProfile_Access(t *testing.T) {
	board, _, _ := newBoard()
	ctx := context.Background()

	_, err := board.MemberProfile(ctx, "club-1", "mallory", "bob")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = board.MemberProfile(ctx, "club-1", "alice", "mallory")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestClubBoard_MemberProfile_ProfileStoreDown(t *testing.T) {
	board, _, _ := newBoard()
	board.profiles = &fakeProfiles{err: domainerrors.StoreUnavailable("profile", errBackend)}

	_, err := board.MemberProfile(context.Background(), "club-1", "alice", "bob")
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}
