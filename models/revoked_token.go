package models

import "time"

// RevokedToken is the database fallback for the JWT blacklist when Redis is
// not configured. Rows past ExpiresAt are garbage and can be pruned.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64" json:"jti"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
