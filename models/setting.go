package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting is the single-row platform configuration consulted by validation
// paths. Defaults mirror the launch configuration: campaigns must ask for at
// least 1000 and donations must be at least 1.
type Setting struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MinGoalAmount  float64   `gorm:"type:decimal(15,2);not null;default:1000" json:"min_goal_amount"`
	MinDonation    float64   `gorm:"type:decimal(15,2);not null;default:1" json:"min_donation"`
	Maintenance    bool      `gorm:"not null;default:false" json:"maintenance"`
	ClosedRegister bool      `gorm:"not null;default:false" json:"closed_register"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// GetSetting returns the platform settings row, falling back to defaults when
// the table is empty (fresh install, test store).
func GetSetting(db *gorm.DB) (*Setting, error) {
	var setting Setting
	err := db.First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return &Setting{MinGoalAmount: 1000, MinDonation: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
