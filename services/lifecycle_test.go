package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.CampaignStatusDraft, models.CampaignStatusPendingReview},
		{models.CampaignStatusDraft, models.CampaignStatusActive},
		{models.CampaignStatusPendingReview, models.CampaignStatusActive},
		{models.CampaignStatusPendingReview, models.CampaignStatusRejected},
		{models.CampaignStatusActive, models.CampaignStatusCompleted},
		{models.CampaignStatusActive, models.CampaignStatusPaused},
		{models.CampaignStatusActive, models.CampaignStatusCancelled},
		{models.CampaignStatusPaused, models.CampaignStatusActive},
		{models.CampaignStatusPaused, models.CampaignStatusCancelled},
		{models.CampaignStatusCompleted, models.CampaignStatusCancelled},
		{models.CampaignStatusRejected, models.CampaignStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		// Nothing resurrects a terminal campaign.
		{models.CampaignStatusCancelled, models.CampaignStatusActive},
		{models.CampaignStatusCancelled, models.CampaignStatusDraft},
		{models.CampaignStatusRejected, models.CampaignStatusActive},
		{models.CampaignStatusRejected, models.CampaignStatusPendingReview},
		{models.CampaignStatusCompleted, models.CampaignStatusActive},
		// No skipping review backwards or pausing before going live.
		{models.CampaignStatusActive, models.CampaignStatusDraft},
		{models.CampaignStatusActive, models.CampaignStatusPendingReview},
		{models.CampaignStatusDraft, models.CampaignStatusCompleted},
		{models.CampaignStatusDraft, models.CampaignStatusPaused},
		{models.CampaignStatusPendingReview, models.CampaignStatusPaused},
		{models.CampaignStatusPaused, models.CampaignStatusCompleted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTransition(t *testing.T) {
	c := &models.Campaign{Status: models.CampaignStatusActive}
	require.NoError(t, Transition(c, models.CampaignStatusPaused))
	assert.Equal(t, models.CampaignStatusPaused, c.Status)

	err := Transition(c, models.CampaignStatusCompleted)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidState))
	assert.Equal(t, models.CampaignStatusPaused, c.Status, "failed transition must not move the status")
}

func TestEditable(t *testing.T) {
	assert.True(t, Editable(models.CampaignStatusDraft))
	assert.True(t, Editable(models.CampaignStatusPendingReview))
	assert.False(t, Editable(models.CampaignStatusActive))
	assert.False(t, Editable(models.CampaignStatusPaused))
	assert.False(t, Editable(models.CampaignStatusCompleted))
	assert.False(t, Editable(models.CampaignStatusCancelled))
	assert.False(t, Editable(models.CampaignStatusRejected))
}

func TestTerminalStatus(t *testing.T) {
	assert.True(t, TerminalStatus(models.CampaignStatusCompleted))
	assert.True(t, TerminalStatus(models.CampaignStatusCancelled))
	assert.True(t, TerminalStatus(models.CampaignStatusRejected))
	assert.False(t, TerminalStatus(models.CampaignStatusActive))
	assert.False(t, TerminalStatus(models.CampaignStatusPaused))
	assert.False(t, TerminalStatus(models.CampaignStatusDraft))
}

func TestAcceptsDonations(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	active := &models.Campaign{Status: models.CampaignStatusActive, GoalAmount: 1000, EndDate: future}
	assert.NoError(t, AcceptsDonations(active, now))

	// Expiry is checked before status, so an expired completed campaign
	// reports expired, not already funded.
	expiredCompleted := &models.Campaign{Status: models.CampaignStatusCompleted, GoalAmount: 1000, RaisedAmount: 1000, EndDate: past}
	err := AcceptsDonations(expiredCompleted, now)
	assert.True(t, IsCode(err, CodeExpired))

	completed := &models.Campaign{Status: models.CampaignStatusCompleted, GoalAmount: 1000, RaisedAmount: 1000, EndDate: future}
	err = AcceptsDonations(completed, now)
	assert.True(t, IsCode(err, CodeAlreadyFunded))

	paused := &models.Campaign{Status: models.CampaignStatusPaused, GoalAmount: 1000, EndDate: future}
	err = AcceptsDonations(paused, now)
	assert.True(t, IsCode(err, CodeInvalidState))

	// Active but already at goal (drift guard) still refuses money.
	atGoal := &models.Campaign{Status: models.CampaignStatusActive, GoalAmount: 1000, RaisedAmount: 1000, EndDate: future}
	err = AcceptsDonations(atGoal, now)
	assert.True(t, IsCode(err, CodeAlreadyFunded))
}
