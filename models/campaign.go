package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Campaign statuses. The transition table in the services package is the only
// place allowed to move a campaign between them.
const (
	CampaignStatusDraft         = "draft"
	CampaignStatusPendingReview = "pending_review"
	CampaignStatusActive        = "active"
	CampaignStatusCompleted     = "completed"
	CampaignStatusPaused        = "paused"
	CampaignStatusCancelled     = "cancelled"
	CampaignStatusRejected      = "rejected"
)

// Beneficiary relationship to the campaign creator.
const (
	RelationshipSelf         = "self"
	RelationshipFamily       = "family"
	RelationshipRelative     = "relative"
	RelationshipFriend       = "friend"
	RelationshipOrganization = "organization"
	RelationshipCommunity    = "community"
)

var validRelationships = map[string]bool{
	RelationshipSelf:         true,
	RelationshipFamily:       true,
	RelationshipRelative:     true,
	RelationshipFriend:       true,
	RelationshipOrganization: true,
	RelationshipCommunity:    true,
}

func ValidRelationship(r string) bool {
	return validRelationships[r]
}

// Beneficiary identifies who the money is for. Age and Details are optional
// context for reviewers (zero age means unspecified).
type Beneficiary struct {
	Name         string `gorm:"size:100;not null" json:"name"`
	Relationship string `gorm:"size:20;not null" json:"relationship"`
	Age          int    `gorm:"not null;default:0" json:"age,omitempty"`
	Details      string `gorm:"size:500" json:"details,omitempty"`
}

// TagList stores campaign tags as a JSON array in a single text column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	return string(b), err
}

func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*t = nil
			return nil
		}
		return json.Unmarshal(v, t)
	case string:
		if v == "" {
			*t = nil
			return nil
		}
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("unsupported tags value of type %T", src)
}

// NormalizeTags trims whitespace, drops empties and deduplicates while
// keeping the caller's order.
func NormalizeTags(in []string) TagList {
	seen := make(map[string]bool, len(in))
	out := make(TagList, 0, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Campaign is the fundraising aggregate. RaisedAmount and TotalWithdrawn are
// ledger-owned: raised_amount always equals the sum of donation rows and
// total_withdrawn the sum of completed withdrawal rows.
//
// Version backs optimistic concurrency: every financial or status write goes
// through UPDATE ... WHERE id = ? AND version = ?.
type Campaign struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	CreatorID   uint        `gorm:"not null;index" json:"creator_id"`
	CauseID     uint        `gorm:"not null;index" json:"cause_id"`
	Beneficiary Beneficiary `gorm:"embedded;embeddedPrefix:beneficiary_" json:"beneficiary"`

	GoalAmount     float64 `gorm:"type:decimal(15,2);not null" json:"goal_amount"`
	RaisedAmount   float64 `gorm:"type:decimal(15,2);not null;default:0" json:"raised_amount"`
	TotalWithdrawn float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_withdrawn"`
	Currency       string  `gorm:"size:3;not null;default:'INR'" json:"currency"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `gorm:"index" json:"end_date"`

	Status            string `gorm:"size:20;not null;default:'draft';index" json:"status"`
	IsVerified        bool   `gorm:"not null;default:false" json:"is_verified"`
	VerificationNotes string `gorm:"type:text" json:"verification_notes,omitempty"`
	IsUrgent          bool   `gorm:"not null;default:false" json:"is_urgent"`
	Tags              TagList `gorm:"type:text" json:"tags,omitempty"`

	Version uint `gorm:"not null;default:0" json:"-"`

	Donations   []Donation         `gorm:"foreignKey:CampaignID" json:"donations,omitempty"`
	Withdrawals []Withdrawal       `gorm:"foreignKey:CampaignID" json:"withdrawals,omitempty"`
	Images      []CampaignImage    `gorm:"foreignKey:CampaignID" json:"images,omitempty"`
	Documents   []CampaignDocument `gorm:"foreignKey:CampaignID" json:"documents,omitempty"`
	Creator     *User              `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Cause       *Cause             `gorm:"foreignKey:CauseID" json:"cause,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// Remaining is the amount still needed to reach the goal.
func (c *Campaign) Remaining() float64 {
	r := c.GoalAmount - c.RaisedAmount
	if r < 0 {
		return 0
	}
	return r
}

// Available is the balance the creator can still withdraw.
func (c *Campaign) Available() float64 {
	a := c.RaisedAmount - c.TotalWithdrawn
	if a < 0 {
		return 0
	}
	return a
}

// HasExpired reports whether the campaign's end date has passed.
func (c *Campaign) HasExpired(now time.Time) bool {
	return !c.EndDate.IsZero() && now.After(c.EndDate)
}

type CampaignImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CampaignID uint      `gorm:"not null;index" json:"campaign_id"`
	URL        string    `gorm:"size:500;not null" json:"url"`
	Caption    string    `gorm:"size:255" json:"caption,omitempty"`
	IsPrimary  bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CampaignImage) TableName() string {
	return "campaign_images"
}

// Verification document types accepted during review.
const (
	DocumentTypeIdentity = "identity"
	DocumentTypeMedical  = "medical"
	DocumentTypeLegal    = "legal"
	DocumentTypeOther    = "other"
)

type CampaignDocument struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CampaignID uint      `gorm:"not null;index" json:"campaign_id"`
	Type       string    `gorm:"size:20;not null;default:'other'" json:"type"`
	URL        string    `gorm:"size:500;not null" json:"url"`
	Name       string    `gorm:"size:255" json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CampaignDocument) TableName() string {
	return "campaign_documents"
}
