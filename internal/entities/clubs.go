package entities

import (
	"time"

	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Valid reports whether r is a known member role.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type Club struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	CoverImageURL *string   `gorm:"size:2048" json:"cover_image_url"`
	CreatedBy     string    `gorm:"size:64;not null;index" json:"created_by"`
	InviteCode    string    `gorm:"size:32;not null;uniqueIndex" json:"invite_code"`
	IsPublic      bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Club) TableName() string {
	return "clubs"
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type ClubMember struct {
	ID       string     `gorm:"primaryKey;size:36" json:"id"`
	ClubID   string     `gorm:"size:36;not null;uniqueIndex:idx_club_members_club_user" json:"club_id"`
	UserID   string     `gorm:"size:64;not null;uniqueIndex:idx_club_members_club_user;index" json:"user_id"`
	Role     MemberRole `gorm:"size:20;not null" json:"role"`
	Club     *Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"club,omitempty"`
	JoinedAt time.Time  `gorm:"autoCreateTime" json:"joined_at"`
}

func (ClubMember) TableName() string {
	return "club_members"
}

func (m *ClubMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// ClubSuggestion is a book proposed for a club's next read.
type ClubSuggestion struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ClubID      string    `gorm:"size:36;not null;uniqueIndex:idx_club_suggestions_club_book" json:"club_id"`
	BookID      string    `gorm:"size:36;not null;uniqueIndex:idx_club_suggestions_club_book" json:"book_id"`
	SuggestedBy string    `gorm:"size:64;not null" json:"suggested_by"`
	Note        *string   `gorm:"type:text" json:"note"`
	Club        *Club     `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"-"`
	Book        *Book     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ClubSuggestion) TableName() string {
	return "club_suggestions"
}

func (s *ClubSuggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}

type SuggestionVote struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	SuggestionID string          `gorm:"size:36;not null;uniqueIndex:idx_suggestion_votes_suggestion_user" json:"suggestion_id"`
	UserID       string          `gorm:"size:64;not null;uniqueIndex:idx_suggestion_votes_suggestion_user" json:"user_id"`
	Suggestion   *ClubSuggestion `gorm:"foreignKey:SuggestionID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (SuggestionVote) TableName() string {
	return "suggestion_votes"
}

func (v *SuggestionVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}

type SuggestionComment struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	SuggestionID string          `gorm:"size:36;not null;index" json:"suggestion_id"`
	UserID       string          `gorm:"size:64;not null" json:"user_id"`
	Content      string          `gorm:"type:text;not null" json:"content"`
	Suggestion   *ClubSuggestion `gorm:"foreignKey:SuggestionID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (SuggestionComment) TableName() string {
	return "suggestion_comments"
}

func (c *SuggestionComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}
