package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserStats are denormalized counters maintained as side effects of ledger
// operations. They are caches: the stats reconciler can rebuild every field
// from the donation and campaign tables.
type UserStats struct {
	TotalDonated       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_donated"`
	TotalRaised        float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_raised"`
	CampaignsCreated   int64   `gorm:"not null;default:0" json:"campaigns_created"`
	CampaignsSupported int64   `gorm:"not null;default:0" json:"campaigns_supported"`
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	Phone          string    `gorm:"size:20" json:"phone,omitempty"`
	ProfilePicture *string   `gorm:"size:500" json:"profile_picture,omitempty"`
	Bio            string    `gorm:"size:500" json:"bio,omitempty"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	PublicProfile  bool      `gorm:"not null;default:true" json:"public_profile"`
	Role           string    `gorm:"size:20;not null;default:'user'" json:"role"`
	Stats          UserStats `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// ValidatePassword checks the provided password against the stored hash.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
