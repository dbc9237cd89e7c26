package services

import (
	"fmt"
	"time"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

// Campaign status transition table. One-directional by design: nothing
// resurrects a rejected or cancelled campaign, and completed campaigns can
// only be cancelled (admin cleanup of a funded campaign).
var campaignTransitions = map[string][]string{
	models.CampaignStatusDraft:         {models.CampaignStatusPendingReview, models.CampaignStatusActive},
	models.CampaignStatusPendingReview: {models.CampaignStatusActive, models.CampaignStatusRejected},
	models.CampaignStatusActive:        {models.CampaignStatusCompleted, models.CampaignStatusPaused, models.CampaignStatusCancelled},
	models.CampaignStatusPaused:        {models.CampaignStatusActive, models.CampaignStatusCancelled},
	models.CampaignStatusCompleted:     {models.CampaignStatusCancelled},
	models.CampaignStatusRejected:      {models.CampaignStatusCancelled},
	models.CampaignStatusCancelled:     {},
}

// CanTransition reports whether a campaign may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, allowed := range campaignTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition applies a status change in memory, failing closed when the move
// is not in the transition table. Callers persist the change themselves,
// typically under the campaign's version guard.
func Transition(c *models.Campaign, to string) error {
	if !CanTransition(c.Status, to) {
		return invalidState(fmt.Sprintf("Campaign cannot move from %s to %s", c.Status, to))
	}
	c.Status = to
	return nil
}

// Editable reports whether structural fields (title, description, goal,
// dates, tags) may still be changed. Once money can flow, the goal posts are
// locked.
func Editable(status string) bool {
	return status == models.CampaignStatusDraft || status == models.CampaignStatusPendingReview
}

// TerminalStatus reports whether the campaign accepts no further donations in
// any circumstance.
func TerminalStatus(status string) bool {
	switch status {
	case models.CampaignStatusCompleted, models.CampaignStatusCancelled, models.CampaignStatusRejected:
		return true
	}
	return false
}

// AcceptsDonations validates that the campaign can take a donation right now.
// Check order mirrors the donate flow the platform has always had: expiry
// first, then status, then the funding ceiling.
func AcceptsDonations(c *models.Campaign, now time.Time) error {
	if c.HasExpired(now) {
		return &DomainError{Code: CodeExpired, Message: "Campaign has ended. Donations are closed."}
	}
	if c.Status != models.CampaignStatusActive {
		if c.Status == models.CampaignStatusCompleted {
			return &DomainError{Code: CodeAlreadyFunded, Message: "Campaign has already reached its goal."}
		}
		return invalidState("Campaign is not accepting donations")
	}
	if c.RaisedAmount >= c.GoalAmount {
		return &DomainError{Code: CodeAlreadyFunded, Message: "Campaign has already reached its goal."}
	}
	return nil
}
