package models

import "time"

// Donation is append-only. Rows are never updated or deleted; refunds and
// corrections would be modeled as new rows, and a campaign's raised_amount is
// always reconstructible as the sum over this table.
type Donation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CampaignID  uint      `gorm:"not null;index" json:"campaign_id"`
	DonorID     uint      `gorm:"not null;index" json:"donor_id"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Message     string    `gorm:"size:500" json:"message,omitempty"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	PaymentRef  string    `gorm:"size:191" json:"payment_ref,omitempty"`
	DonatedAt   time.Time `gorm:"not null;index" json:"donated_at"`

	Donor *User `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}
