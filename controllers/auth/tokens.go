package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

const refreshTokenTTLDays = 30

// generateRefreshToken mints and stores an opaque refresh token for the user.
func generateRefreshToken(db *gorm.DB, userID uint) (string, *models.RefreshToken, error) {
	rt, err := models.NewRefreshToken(userID, refreshTokenTTLDays)
	if err != nil {
		return "", nil, err
	}
	if err := db.Create(rt).Error; err != nil {
		return "", nil, err
	}
	return rt.ID, rt, nil
}

// validateRefreshToken loads a refresh token and rejects revoked or expired ones.
func validateRefreshToken(id string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", id).First(&rt).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}
	if rt.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}
