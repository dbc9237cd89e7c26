package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	return &u
}

func reloadCause(t *testing.T, db *gorm.DB, id uint) *models.Cause {
	t.Helper()
	var c models.Cause
	require.NoError(t, db.First(&c, id).Error)
	return &c
}

func TestDonationStats_Counters(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 1500,
	})
	require.NoError(t, err)

	d := reloadUser(t, db, donor.ID)
	assert.Equal(t, 1500.0, d.Stats.TotalDonated)
	assert.Equal(t, int64(1), d.Stats.CampaignsSupported)

	c := reloadUser(t, db, creator.ID)
	assert.Equal(t, 1500.0, c.Stats.TotalRaised)

	assert.Equal(t, 1500.0, reloadCause(t, db, cause.ID).TotalRaised)
}

func TestDonationStats_SupportedCountsDistinctCampaigns(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	first := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})
	second := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	// Two donations to the same campaign: supported moves once.
	for i := 0; i < 2; i++ {
		_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
			CampaignID: first.ID, DonorID: donor.ID, Amount: 100,
		})
		require.NoError(t, err)
	}
	d := reloadUser(t, db, donor.ID)
	assert.Equal(t, int64(1), d.Stats.CampaignsSupported)
	assert.Equal(t, 200.0, d.Stats.TotalDonated)

	// A donation to a second campaign moves it again.
	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: second.ID, DonorID: donor.ID, Amount: 50,
	})
	require.NoError(t, err)
	d = reloadUser(t, db, donor.ID)
	assert.Equal(t, int64(2), d.Stats.CampaignsSupported)
	assert.Equal(t, 250.0, d.Stats.TotalDonated)
}

func TestApplyCampaignCreated(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "creator@example.com")
	cause := seedCause(t, db, "Education")

	require.NoError(t, ApplyCampaignCreated(db, creator.ID, cause.ID))

	assert.Equal(t, int64(1), reloadUser(t, db, creator.ID).Stats.CampaignsCreated)
	assert.Equal(t, int64(1), reloadCause(t, db, cause.ID).CampaignCount)
}

func TestReconcileCampaign_FixesDrift(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	stats := NewStats(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 3000,
	})
	require.NoError(t, err)

	// Corrupt the cached aggregate behind the ledger's back.
	require.NoError(t, db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).
		Update("raised_amount", 9999).Error)

	got, err := stats.ReconcileCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got.RaisedAmount)
	assert.Equal(t, 0.0, got.TotalWithdrawn)
	assert.Equal(t, 3000.0, reloadCampaign(t, db, campaign.ID).RaisedAmount)
}

func TestReconcileCampaign_NoDriftIsNoop(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	stats := NewStats(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 1000,
	})
	require.NoError(t, err)

	before := reloadCampaign(t, db, campaign.ID)
	got, err := stats.ReconcileCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, before.RaisedAmount, got.RaisedAmount)
	assert.Equal(t, before.Version, got.Version, "clean reconcile should not bump the version")
}

func TestReconcileCampaign_RecountsWithdrawals(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	stats := NewStats(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	campaign := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: campaign.ID, DonorID: donor.ID, Amount: 5000,
	})
	require.NoError(t, err)

	w, err := ledger.RequestWithdrawal(context.Background(), RequestWithdrawalInput{
		CampaignID: campaign.ID, RequesterID: creator.ID, Amount: 2000,
	})
	require.NoError(t, err)
	_, err = ledger.ResolveWithdrawal(context.Background(), ResolveWithdrawalInput{
		CampaignID: campaign.ID, WithdrawalID: w.ID, Decision: models.WithdrawalStatusCompleted,
	})
	require.NoError(t, err)

	// A pending withdrawal must not count toward total_withdrawn.
	_, err = ledger.RequestWithdrawal(context.Background(), RequestWithdrawalInput{
		CampaignID: campaign.ID, RequesterID: creator.ID, Amount: 1000,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).
		Update("total_withdrawn", 0).Error)

	got, err := stats.ReconcileCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.TotalWithdrawn)
}

func TestReconcileUser(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	stats := NewStats(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	first := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})
	second := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})

	for _, in := range []RecordDonationInput{
		{CampaignID: first.ID, DonorID: donor.ID, Amount: 300},
		{CampaignID: first.ID, DonorID: donor.ID, Amount: 200},
		{CampaignID: second.ID, DonorID: donor.ID, Amount: 100},
	} {
		_, err := ledger.RecordDonation(context.Background(), in)
		require.NoError(t, err)
	}

	// Corrupt the donor's cached stats, then rebuild.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", donor.ID).Updates(map[string]interface{}{
		"stats_total_donated":       1,
		"stats_campaigns_supported": 99,
	}).Error)

	require.NoError(t, stats.ReconcileUser(context.Background(), donor.ID))
	d := reloadUser(t, db, donor.ID)
	assert.Equal(t, 600.0, d.Stats.TotalDonated)
	assert.Equal(t, int64(2), d.Stats.CampaignsSupported)

	require.NoError(t, stats.ReconcileUser(context.Background(), creator.ID))
	c := reloadUser(t, db, creator.ID)
	assert.Equal(t, 600.0, c.Stats.TotalRaised)
	assert.Equal(t, int64(2), c.Stats.CampaignsCreated)
}

func TestReconcileCause(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	stats := NewStats(db)
	creator := seedUser(t, db, "creator@example.com")
	donor := seedUser(t, db, "donor@example.com")
	cause := seedCause(t, db, "Medical")
	first := seedCampaign(t, db, creator, cause, campaignOpts{goal: 10000})
	seedCampaign(t, db, creator, cause, campaignOpts{goal: 5000})

	_, err := ledger.RecordDonation(context.Background(), RecordDonationInput{
		CampaignID: first.ID, DonorID: donor.ID, Amount: 750,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Cause{}).Where("id = ?", cause.ID).Updates(map[string]interface{}{
		"campaign_count": 0,
		"total_raised":   12345,
	}).Error)

	require.NoError(t, stats.ReconcileCause(context.Background(), cause.ID))
	c := reloadCause(t, db, cause.ID)
	assert.Equal(t, int64(2), c.CampaignCount)
	assert.Equal(t, 750.0, c.TotalRaised)
}
