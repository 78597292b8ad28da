package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/database/clubs"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
	"github.com/ruckusreads/ruckus/internal/services"
)

// ClubStore defines database operations for book clubs.
type ClubStore interface {
	GetUserClubs(ctx context.Context, userID string) ([]entities.Club, error)
	GetClub(ctx context.Context, clubID string) (*entities.Club, error)
	CreateClub(ctx context.Context, userID string, input clubs.NewClub) (*entities.Club, error)
	UpdateClub(ctx context.Context, clubID string, update clubs.ClubUpdate) (*entities.Club, error)
	DeleteClub(ctx context.Context, clubID string) error
	GetClubMembers(ctx context.Context, clubID string) ([]entities.ClubMember, error)
	LeaveClub(ctx context.Context, clubID, userID string) error
	UpdateMemberRole(ctx context.Context, clubID, userID string, role entities.MemberRole) (*entities.ClubMember, error)
	SuggestBook(ctx context.Context, clubID, userID, bookID string, note *string) (*entities.ClubSuggestion, error)
	GetSuggestion(ctx context.Context, suggestionID string) (*entities.ClubSuggestion, error)
	RemoveSuggestion(ctx context.Context, suggestionID string) error
	Vote(ctx context.Context, suggestionID, userID string) error
	RemoveVote(ctx context.Context, suggestionID, userID string) error
	AddComment(ctx context.Context, suggestionID, userID, content string) (*entities.SuggestionComment, error)
	GetComment(ctx context.Context, commentID string) (*entities.SuggestionComment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// ClubBoard assembles what members see on a club page.
type ClubBoard interface {
	JoinByInviteCode(ctx context.Context, code, userID string) (*entities.Club, error)
	Suggestions(ctx context.Context, clubID, userID string) ([]services.SuggestionView, error)
	MemberProfile(ctx context.Context, clubID, viewerID, memberID string) (*services.MemberProfileView, error)
}

type ClubsController struct {
	store ClubStore
	board ClubBoard
}

func NewClubsController(store ClubStore, board ClubBoard) *ClubsController {
	return &ClubsController{store: store, board: board}
}

// List returns the clubs the user belongs to.
// GET /api/clubs
func (cc *ClubsController) List(c *gin.Context) {
	result, err := cc.store.GetUserClubs(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondError(c, err, "list clubs")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create starts a club with the user as owner.
// POST /api/clubs
func (cc *ClubsController) Create(c *gin.Context) {
	var req clubs.NewClub
	if !bindJSON(c, &req) {
		return
	}

	club, err := cc.store.CreateClub(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		respondError(c, err, "create club")
		return
	}
	respondCreated(c, club)
}

// Join adds the user to the club owning an invite code.
// POST /api/clubs/join
func (cc *ClubsController) Join(c *gin.Context) {
	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if !bindJSON(c, &req) {
		return
	}

	club, err := cc.board.JoinByInviteCode(c.Request.Context(), req.InviteCode, GetUserID(c))
	if err != nil {
		respondError(c, err, "join club")
		return
	}
	c.JSON(http.StatusOK, club)
}

// Get returns a club.
// GET /api/clubs/:id
func (cc *ClubsController) Get(c *gin.Context) {
	member, ok := cc.requireMember(c)
	if !ok {
		return
	}

	club, err := cc.store.GetClub(c.Request.Context(), member.ClubID)
	if err != nil {
		respondError(c, err, "get club")
		return
	}
	c.JSON(http.StatusOK, club)
}

// Update edits club details. Owners and admins only.
// PATCH /api/clubs/:id
func (cc *ClubsController) Update(c *gin.Context) {
	member, ok := cc.requireRole(c, entities.RoleOwner, entities.RoleAdmin)
	if !ok {
		return
	}

	var req clubs.ClubUpdate
	if !bindJSON(c, &req) {
		return
	}

	club, err := cc.store.UpdateClub(c.Request.Context(), member.ClubID, req)
	if err != nil {
		respondError(c, err, "update club")
		return
	}
	c.JSON(http.StatusOK, club)
}

// Delete removes a club. Owners only.
// DELETE /api/clubs/:id
func (cc *ClubsController) Delete(c *gin.Context) {
	member, ok := cc.requireRole(c, entities.RoleOwner)
	if !ok {
		return
	}

	if err := cc.store.DeleteClub(c.Request.Context(), member.ClubID); err != nil {
		respondError(c, err, "delete club")
		return
	}
	respondSuccess(c, "club deleted")
}

// Members lists a club's members.
// GET /api/clubs/:id/members
func (cc *ClubsController) Members(c *gin.Context) {
	member, ok := cc.requireMember(c)
	if !ok {
		return
	}

	members, err := cc.store.GetClubMembers(c.Request.Context(), member.ClubID)
	if err != nil {
		respondError(c, err, "list club members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// MemberProfile shows another member's reading and public notes.
// GET /api/clubs/:id/members/:userId/profile
func (cc *ClubsController) MemberProfile(c *gin.Context) {
	clubID, ok := requireParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := requireParam(c, "userId")
	if !ok {
		return
	}

	view, err := cc.board.MemberProfile(c.Request.Context(), clubID, GetUserID(c), memberID)
	if err != nil {
		respondError(c, err, "member profile")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Leave removes the user from a club.
// DELETE /api/clubs/:id/members/me
func (cc *ClubsController) Leave(c *gin.Context) {
	clubID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := cc.store.LeaveClub(c.Request.Context(), clubID, GetUserID(c)); err != nil {
		respondError(c, err, "leave club")
		return
	}
	respondSuccess(c, "left club")
}

// UpdateMemberRole changes another member's role. Owners only.
// PATCH /api/clubs/:id/members/:userId
func (cc *ClubsController) UpdateMemberRole(c *gin.Context) {
	member, ok := cc.requireRole(c, entities.RoleOwner)
	if !ok {
		return
	}
	targetID, ok := requireParam(c, "userId")
	if !ok {
		return
	}

	var req struct {
		Role entities.MemberRole `json:"role"`
	}
	if !bindJSON(c, &req) {
		return
	}

	updated, err := cc.store.UpdateMemberRole(c.Request.Context(), member.ClubID, targetID, req.Role)
	if err != nil {
		respondError(c, err, "update member role")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Suggestions returns the suggestion board.
// GET /api/clubs/:id/suggestions
func (cc *ClubsController) Suggestions(c *gin.Context) {
	clubID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	views, err := cc.board.Suggestions(c.Request.Context(), clubID, GetUserID(c))
	if err != nil {
		respondError(c, err, "list suggestions")
		return
	}
	c.JSON(http.StatusOK, views)
}

// Suggest proposes a book to the club.
// POST /api/clubs/:id/suggestions
func (cc *ClubsController) Suggest(c *gin.Context) {
	member, ok := cc.requireMember(c)
	if !ok {
		return
	}

	var req struct {
		BookID string  `json:"book_id"`
		Note   *string `json:"note"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.BookID == "" {
		respondBadRequest(c, "book_id is required")
		return
	}

	suggestion, err := cc.store.SuggestBook(c.Request.Context(), member.ClubID, member.UserID, req.BookID, req.Note)
	if err != nil {
		respondError(c, err, "suggest book")
		return
	}
	respondCreated(c, suggestion)
}

// RemoveSuggestion withdraws a suggestion. The suggester, owners and admins
// may remove it.
// DELETE /api/clubs/:id/suggestions/:suggestionId
func (cc *ClubsController) RemoveSuggestion(c *gin.Context) {
	member, suggestion, ok := cc.loadSuggestion(c)
	if !ok {
		return
	}
	if suggestion.SuggestedBy != member.UserID && member.Role == entities.RoleMember {
		respondError(c, domainerrors.Forbidden("only the suggester or a club admin can remove a suggestion"), "remove suggestion")
		return
	}

	if err := cc.store.RemoveSuggestion(c.Request.Context(), suggestion.ID); err != nil {
		respondError(c, err, "remove suggestion")
		return
	}
	respondSuccess(c, "suggestion removed")
}

// Vote records the user's vote on a suggestion.
// POST /api/clubs/:id/suggestions/:suggestionId/vote
func (cc *ClubsController) Vote(c *gin.Context) {
	member, suggestion, ok := cc.loadSuggestion(c)
	if !ok {
		return
	}

	if err := cc.store.Vote(c.Request.Context(), suggestion.ID, member.UserID); err != nil {
		respondError(c, err, "vote")
		return
	}
	respondSuccess(c, "vote recorded")
}

// Unvote removes the user's vote.
// DELETE /api/clubs/:id/suggestions/:suggestionId/vote
func (cc *ClubsController) Unvote(c *gin.Context) {
	member, suggestion, ok := cc.loadSuggestion(c)
	if !ok {
		return
	}

	if err := cc.store.RemoveVote(c.Request.Context(), suggestion.ID, member.UserID); err != nil {
		respondError(c, err, "remove vote")
		return
	}
	respondSuccess(c, "vote removed")
}

// Comment adds a comment to a suggestion.
// POST /api/clubs/:id/suggestions/:suggestionId/comments
func (cc *ClubsController) Comment(c *gin.Context) {
	member, suggestion, ok := cc.loadSuggestion(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.store.AddComment(c.Request.Context(), suggestion.ID, member.UserID, req.Content)
	if err != nil {
		respondError(c, err, "add comment")
		return
	}
	respondCreated(c, comment)
}

// DeleteComment removes one of the user's comments.
// DELETE /api/clubs/:id/suggestions/:suggestionId/comments/:commentId
func (cc *ClubsController) DeleteComment(c *gin.Context) {
	member, suggestion, ok := cc.loadSuggestion(c)
	if !ok {
		return
	}
	commentID, ok := requireParam(c, "commentId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := cc.store.GetComment(ctx, commentID)
	if err != nil {
		respondError(c, err, "get comment")
		return
	}
	if comment.SuggestionID != suggestion.ID {
		respondNotFound(c, "comment")
		return
	}
	if comment.UserID != member.UserID {
		respondError(c, domainerrors.Forbidden("only the author can delete a comment"), "delete comment")
		return
	}

	if err := cc.store.DeleteComment(ctx, comment.ID); err != nil {
		respondError(c, err, "delete comment")
		return
	}
	respondSuccess(c, "comment deleted")
}

// requireMember resolves the acting user's membership in the :id club.
func (cc *ClubsController) requireMember(c *gin.Context) (*entities.ClubMember, bool) {
	clubID, ok := requireParam(c, "id")
	if !ok {
		return nil, false
	}

	members, err := cc.store.GetClubMembers(c.Request.Context(), clubID)
	if err != nil {
		respondError(c, err, "list club members")
		return nil, false
	}

	userID := GetUserID(c)
	for i := range members {
		if members[i].UserID == userID {
			return &members[i], true
		}
	}
	respondError(c, domainerrors.Forbidden("only club members can do this"), "club membership")
	return nil, false
}

func (cc *ClubsController) requireRole(c *gin.Context, roles ...entities.MemberRole) (*entities.ClubMember, bool) {
	member, ok := cc.requireMember(c)
	if !ok {
		return nil, false
	}
	for _, role := range roles {
		if member.Role == role {
			return member, true
		}
	}
	respondError(c, domainerrors.Forbidden("insufficient club role"), "club role")
	return nil, false
}

// loadSuggestion resolves membership and a suggestion belonging to the club.
func (cc *ClubsController) loadSuggestion(c *gin.Context) (*entities.ClubMember, *entities.ClubSuggestion, bool) {
	member, ok := cc.requireMember(c)
	if !ok {
		return nil, nil, false
	}
	suggestionID, ok := requireParam(c, "suggestionId")
	if !ok {
		return nil, nil, false
	}

	suggestion, err := cc.store.GetSuggestion(c.Request.Context(), suggestionID)
	if err != nil {
		respondError(c, err, "get suggestion")
		return nil, nil, false
	}
	if suggestion.ClubID != member.ClubID {
		respondNotFound(c, "suggestion")
		return nil, nil, false
	}
	return member, suggestion, true
}
