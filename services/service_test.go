package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

// newTestDB opens an in-memory SQLite database migrated with the full model
// set. The pool is pinned to a single connection so every transaction sees the
// same database and transactions serialize instead of hitting SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Cause{},
		&models.Campaign{},
		&models.CampaignImage{},
		&models.CampaignDocument{},
		&models.Donation{},
		&models.Withdrawal{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCause(t *testing.T, db *gorm.DB, name string) *models.Cause {
	t.Helper()
	c := &models.Cause{
		Name:        name,
		Description: "test cause",
		Icon:        "heart",
		IsActive:    true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

type campaignOpts struct {
	goal   float64
	status string
	endsAt time.Time
}

func seedCampaign(t *testing.T, db *gorm.DB, creator *models.User, cause *models.Cause, opts campaignOpts) *models.Campaign {
	t.Helper()
	if opts.status == "" {
		opts.status = models.CampaignStatusActive
	}
	if opts.endsAt.IsZero() {
		opts.endsAt = time.Now().Add(30 * 24 * time.Hour)
	}
	c := &models.Campaign{
		Title:       "Test Campaign",
		Description: "a campaign used in tests",
		CreatorID:   creator.ID,
		CauseID:     cause.ID,
		GoalAmount:  opts.goal,
		Currency:    "INR",
		StartDate:   time.Now().Add(-24 * time.Hour),
		EndDate:     opts.endsAt,
		Status:      opts.status,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// reloadCampaign fetches the campaign fresh from the database.
func reloadCampaign(t *testing.T, db *gorm.DB, id uint) *models.Campaign {
	t.Helper()
	var c models.Campaign
	require.NoError(t, db.First(&c, id).Error)
	return &c
}

func donationSum(t *testing.T, db *gorm.DB, campaignID uint) float64 {
	t.Helper()
	var sum float64
	require.NoError(t, db.Model(&models.Donation{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error)
	return sum
}
