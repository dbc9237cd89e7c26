package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

func TestApproveCampaign(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{
		goal:   10000,
		status: models.CampaignStatusPendingReview,
	})

	got, err := mod.ApproveCampaign(context.Background(), campaign.ID, "documents look good")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, got.Status)
	assert.True(t, got.IsVerified)
	assert.Equal(t, "documents look good", got.VerificationNotes)

	fresh := reloadCampaign(t, db, campaign.ID)
	assert.Equal(t, models.CampaignStatusActive, fresh.Status)
	assert.True(t, fresh.IsVerified)

	// Approving twice is refused.
	_, err = mod.ApproveCampaign(context.Background(), campaign.ID, "")
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
}

func TestRejectCampaign(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{
		goal:   10000,
		status: models.CampaignStatusPendingReview,
	})

	got, err := mod.RejectCampaign(context.Background(), campaign.ID, "insufficient documentation")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusRejected, got.Status)
	assert.Equal(t, "insufficient documentation", got.VerificationNotes)

	// A rejected campaign cannot be rejected again, nor approved.
	_, err = mod.RejectCampaign(context.Background(), campaign.ID, "again")
	assert.True(t, IsCode(err, CodeInvalidState))
	_, err = mod.ApproveCampaign(context.Background(), campaign.ID, "")
	assert.True(t, IsCode(err, CodeInvalidState))
}

func TestRejectCampaign_OnlyPendingReview(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := mod.RejectCampaign(context.Background(), campaign.ID, "too late")
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
	assert.Equal(t, models.CampaignStatusActive, reloadCampaign(t, db, campaign.ID).Status)
}

func TestPauseCampaign(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	// A non-admin stranger cannot pause someone else's campaign.
	_, err := mod.PauseCampaign(context.Background(), campaign.ID, stranger.ID, false)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeUnauthorized))

	got, err := mod.PauseCampaign(context.Background(), campaign.ID, creator.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPaused, got.Status)

	// Pausing an already-paused campaign fails.
	_, err = mod.PauseCampaign(context.Background(), campaign.ID, 0, true)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
}

func TestPauseCampaign_AdminOverride(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	got, err := mod.PauseCampaign(context.Background(), campaign.ID, 0, true)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPaused, got.Status)
}

func TestReactivateCampaign(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{
		goal:   10000,
		status: models.CampaignStatusPaused,
	})

	got, err := mod.ReactivateCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, got.Status)

	_, err = mod.ReactivateCampaign(context.Background(), campaign.ID)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
}

func TestDeleteCampaign_FundedIsCancelled(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	ledger := NewLedger(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 500,
	})
	require.NoError(t, err)

	cancelled, err := mod.DeleteCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// The row survives for audit, in cancelled status with its money intact.
	fresh := reloadCampaign(t, db, campaign.ID)
	assert.Equal(t, models.CampaignStatusCancelled, fresh.Status)
	assert.Equal(t, 500.0, fresh.RaisedAmount)
}

func TestDeleteCampaign_UnfundedIsRemoved(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	require.NoError(t, db.Model(&models.Cause{}).Where("id = ?", cause.ID).
		Update("campaign_count", 1).Error)
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{
		goal:   10000,
		status: models.CampaignStatusPendingReview,
	})

	cancelled, err := mod.DeleteCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	err = db.First(&models.Campaign{}, campaign.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var freshCause models.Cause
	require.NoError(t, db.First(&freshCause, cause.ID).Error)
	assert.Equal(t, int64(0), freshCause.CampaignCount)
}

func TestDeleteOwnCampaign(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{
		goal:   10000,
		status: models.CampaignStatusDraft,
	})

	err := mod.DeleteOwnCampaign(context.Background(), campaign.ID, stranger.ID)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeUnauthorized))

	require.NoError(t, mod.DeleteOwnCampaign(context.Background(), campaign.ID, creator.ID))
	err = db.First(&models.Campaign{}, campaign.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteOwnCampaign_LockedAfterReview(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	err := mod.DeleteOwnCampaign(context.Background(), campaign.ID, creator.ID)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
	assert.NoError(t, db.First(&models.Campaign{}, campaign.ID).Error)
}

func TestDeleteOwnCampaign_FundedIsRefused(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	ledger := NewLedger(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 100,
	})
	require.NoError(t, err)

	err = mod.DeleteOwnCampaign(context.Background(), campaign.ID, creator.ID)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
}

func TestModerationResolveWithdrawal_Delegates(t *testing.T) {
	db := newTestDB(t)
	mod := NewModeration(db)
	ledger := NewLedger(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 2000,
	})
	require.NoError(t, err)
	w, err := ledger.RequestWithdrawal(context.Background(), RequestWithdrawalInput{
		CampaignID: campaign.ID, RequesterID: creator.ID, Amount: 2000,
	})
	require.NoError(t, err)

	resolved, err := mod.ResolveWithdrawal(context.Background(), ResolveWithdrawalInput{
		CampaignID:     campaign.ID,
		WithdrawalID:   w.ID,
		Decision:       models.WithdrawalStatusCompleted,
		TransactionRef: "TXN-MOD-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCompleted, resolved.Status)
	assert.Equal(t, 2000.0, reloadCampaign(t, db, campaign.ID).TotalWithdrawn)
}
