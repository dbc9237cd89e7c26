package models

import "time"

// Cause is a topical category grouping campaigns. CampaignCount and
// TotalRaised are caches over the campaign table, maintained transactionally
// by the ledger and rebuildable via the stats reconciler.
type Cause struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Icon        string `gorm:"size:255;not null" json:"icon"`
	Color       string `gorm:"size:7;not null;default:'#3B82F6'" json:"color"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CampaignCount int64   `gorm:"not null;default:0" json:"campaign_count"`
	TotalRaised   float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_raised"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cause) TableName() string {
	return "causes"
}
