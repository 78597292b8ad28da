// Package clubs provides database operations for book clubs: clubs, their
// members, book suggestions, suggestion votes and comments.
//
// Creating a club makes its creator the owner in the same transaction.
// Deleting a club cascades to members, suggestions, votes and comments via
// foreign keys.
package clubs

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
	"github.com/ruckusreads/ruckus/internal/validation"
)

const (
	inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteLength   = 8
)

// NewClub holds the fields needed to create a club.
type NewClub struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,url"`
	IsPublic      bool    `json:"is_public"`
}

// ClubUpdate is a partial update; nil fields are left unchanged.
type ClubUpdate struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,url"`
	IsPublic      *bool   `json:"is_public"`
}

// Repository handles all club database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new clubs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NewInviteCode returns a short code that is easy to read out loud.
func NewInviteCode() (string, error) {
	code, err := gonanoid.Generate(inviteAlphabet, inviteLength)
	if err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return code, nil
}

// GetUserClubs returns the clubs a user belongs to, most recently joined first.
func (r *Repository) GetUserClubs(ctx context.Context, userID string) ([]entities.Club, error) {
	clubs := []entities.Club{}
	err := r.db.WithContext(ctx).
		Select("clubs.*").
		Joins("JOIN club_members ON club_members.club_id = clubs.id").
		Where("club_members.user_id = ?", userID).
		Order("club_members.joined_at DESC").
		Find(&clubs).Error
	if err != nil {
		return nil, database.TranslateError(err, "club")
	}
	return clubs, nil
}

// GetClub retrieves a club by ID.
func (r *Repository) GetClub(ctx context.Context, clubID string) (*entities.Club, error) {
	var club entities.Club
	if err := r.db.WithContext(ctx).Where("id = ?", clubID).First(&club).Error; err != nil {
		return nil, database.TranslateError(err, "club")
	}
	return &club, nil
}

// GetClubByInviteCode retrieves a club by its invite code.
func (r *Repository) GetClubByInviteCode(ctx context.Context, code string) (*entities.Club, error) {
	var club entities.Club
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&club).Error; err != nil {
		return nil, database.TranslateError(err, "club")
	}
	return &club, nil
}

// CreateClub creates a club with a fresh invite code and adds the creator as
// its owner.
func (r *Repository) CreateClub(ctx context.Context, userID string, input NewClub) (*entities.Club, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}

	club := &entities.Club{
		Name:          input.Name,
		Description:   input.Description,
		CoverImageURL: input.CoverImageURL,
		CreatedBy:     userID,
		InviteCode:    code,
		IsPublic:      input.IsPublic,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		owner := &entities.ClubMember{ClubID: club.ID, UserID: userID, Role: entities.RoleOwner}
		return tx.Omit("Club").Create(owner).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "club")
	}
	return club, nil
}

// UpdateClub applies a partial update and returns the stored club.
func (r *Repository) UpdateClub(ctx context.Context, clubID string, update ClubUpdate) (*entities.Club, error) {
	if err := validation.Validate(update); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.CoverImageURL != nil {
		updates["cover_image_url"] = *update.CoverImageURL
	}
	if update.IsPublic != nil {
		updates["is_public"] = *update.IsPublic
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&entities.Club{}).Where("id = ?", clubID).Updates(updates)
		if err := database.NotFoundIfNoRows(result, "club"); err != nil {
			return nil, err
		}
	}
	return r.GetClub(ctx, clubID)
}

// DeleteClub removes a club and everything attached to it.
func (r *Repository) DeleteClub(ctx context.Context, clubID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", clubID).Delete(&entities.Club{})
	return database.NotFoundIfNoRows(result, "club")
}

// GetClubMembers returns a club's members in join order.
func (r *Repository) GetClubMembers(ctx context.Context, clubID string) ([]entities.ClubMember, error) {
	members := []entities.ClubMember{}
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, database.TranslateError(err, "club member")
	}
	return members, nil
}

// JoinClub adds a user as a regular member. Joining twice fails with
// DuplicateEntry.
func (r *Repository) JoinClub(ctx context.Context, clubID, userID string) (*entities.ClubMember, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	member := &entities.ClubMember{ClubID: clubID, UserID: userID, Role: entities.RoleMember}
	if err := r.db.WithContext(ctx).Omit("Club").Create(member).Error; err != nil {
		return nil, database.TranslateError(err, "club member")
	}
	return member, nil
}

// LeaveClub removes a user's membership.
func (r *Repository) LeaveClub(ctx context.Context, clubID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&entities.ClubMember{})
	return database.NotFoundIfNoRows(result, "club member")
}

// UpdateMemberRole changes a member's role.
func (r *Repository) UpdateMemberRole(ctx context.Context, clubID, userID string, role entities.MemberRole) (*entities.ClubMember, error) {
	if !role.Valid() {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("unknown member role %q", role))
	}

	result := r.db.WithContext(ctx).
		Model(&entities.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Update("role", role)
	if err := database.NotFoundIfNoRows(result, "club member"); err != nil {
		return nil, err
	}

	var member entities.ClubMember
	err := r.db.WithContext(ctx).Where("club_id = ? AND user_id = ?", clubID, userID).First(&member).Error
	if err != nil {
		return nil, database.TranslateError(err, "club member")
	}
	return &member, nil
}

// IsMember reports whether a user belongs to a club.
func (r *Repository) IsMember(ctx context.Context, clubID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError(err, "club member")
	}
	return count > 0, nil
}

// SuggestBook proposes a book for a club. A book can be suggested once per
// club.
func (r *Repository) SuggestBook(ctx context.Context, clubID, userID, bookID string, note *string) (*entities.ClubSuggestion, error) {
	suggestion := &entities.ClubSuggestion{
		ClubID:      clubID,
		BookID:      bookID,
		SuggestedBy: userID,
		Note:        note,
	}
	if err := r.db.WithContext(ctx).Omit("Club", "Book").Create(suggestion).Error; err != nil {
		return nil, database.TranslateError(err, "suggestion")
	}
	return suggestion, nil
}

// GetSuggestion retrieves a suggestion with its Book.
func (r *Repository) GetSuggestion(ctx context.Context, suggestionID string) (*entities.ClubSuggestion, error) {
	var suggestion entities.ClubSuggestion
	err := r.db.WithContext(ctx).Preload("Book").Where("id = ?", suggestionID).First(&suggestion).Error
	if err != nil {
		return nil, database.TranslateError(err, "suggestion")
	}
	return &suggestion, nil
}

// RemoveSuggestion deletes a suggestion with its votes and comments.
func (r *Repository) RemoveSuggestion(ctx context.Context, suggestionID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", suggestionID).Delete(&entities.ClubSuggestion{})
	return database.NotFoundIfNoRows(result, "suggestion")
}

// ListSuggestions returns a club's suggestions with their Books, newest first.
func (r *Repository) ListSuggestions(ctx context.Context, clubID string) ([]entities.ClubSuggestion, error) {
	suggestions := []entities.ClubSuggestion{}
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&suggestions).Error
	if err != nil {
		return nil, database.TranslateError(err, "suggestion")
	}
	return suggestions, nil
}

// Vote records a user's vote for a suggestion. Voting twice fails with
// DuplicateEntry.
func (r *Repository) Vote(ctx context.Context, suggestionID, userID string) error {
	vote := &entities.SuggestionVote{SuggestionID: suggestionID, UserID: userID}
	if err := r.db.WithContext(ctx).Omit("Suggestion").Create(vote).Error; err != nil {
		return database.TranslateError(err, "vote")
	}
	return nil
}

// RemoveVote withdraws a user's vote.
func (r *Repository) RemoveVote(ctx context.Context, suggestionID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Delete(&entities.SuggestionVote{})
	return database.NotFoundIfNoRows(result, "vote")
}

// ListVotes returns every vote cast on the given suggestions.
func (r *Repository) ListVotes(ctx context.Context, suggestionIDs []string) ([]entities.SuggestionVote, error) {
	votes := []entities.SuggestionVote{}
	if len(suggestionIDs) == 0 {
		return votes, nil
	}
	err := r.db.WithContext(ctx).Where("suggestion_id IN ?", suggestionIDs).Find(&votes).Error
	if err != nil {
		return nil, database.TranslateError(err, "vote")
	}
	return votes, nil
}

// AddComment attaches a comment to a suggestion.
func (r *Repository) AddComment(ctx context.Context, suggestionID, userID, content string) (*entities.SuggestionComment, error) {
	if content == "" {
		return nil, domainerrors.InvalidArgument("comment content is required")
	}
	comment := &entities.SuggestionComment{SuggestionID: suggestionID, UserID: userID, Content: content}
	if err := r.db.WithContext(ctx).Omit("Suggestion").Create(comment).Error; err != nil {
		return nil, database.TranslateError(err, "comment")
	}
	return comment, nil
}

// GetComment retrieves a comment by ID.
func (r *Repository) GetComment(ctx context.Context, commentID string) (*entities.SuggestionComment, error) {
	var comment entities.SuggestionComment
	if err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, database.TranslateError(err, "comment")
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", commentID).Delete(&entities.SuggestionComment{})
	return database.NotFoundIfNoRows(result, "comment")
}

// ListComments returns the comments on the given suggestions, oldest first.
func (r *Repository) ListComments(ctx context.Context, suggestionIDs []string) ([]entities.SuggestionComment, error) {
	comments := []entities.SuggestionComment{}
	if len(suggestionIDs) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).
		Where("suggestion_id IN ?", suggestionIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, database.TranslateError(err, "comment")
	}
	return comments, nil
}
