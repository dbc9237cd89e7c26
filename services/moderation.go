package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

// Moderation is the admin gateway over campaign lifecycle transitions and
// withdrawal resolution. It is the only caller allowed to invoke the terminal
// transitions; balance mutation stays with the Ledger.
type Moderation struct {
	db     *gorm.DB
	ledger *Ledger
}

func NewModeration(db *gorm.DB) *Moderation {
	return &Moderation{db: db, ledger: NewLedger(db)}
}

// updateStatus persists a status change under the campaign's version guard.
func (m *Moderation) updateStatus(tx *gorm.DB, c *models.Campaign, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":  c.Status,
		"version": c.Version + 1,
	}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&models.Campaign{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &DomainError{Code: CodeConflict, Message: "Campaign is busy, please retry"}
	}
	c.Version++
	return nil
}

func (m *Moderation) loadCampaign(tx *gorm.DB, id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := tx.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Campaign not found")
		}
		return nil, err
	}
	return &c, nil
}

// ApproveCampaign moves a draft or pending_review campaign to active and
// marks it verified.
func (m *Moderation) ApproveCampaign(ctx context.Context, id uint, notes string) (*models.Campaign, error) {
	var out models.Campaign
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if c.Status != models.CampaignStatusDraft && c.Status != models.CampaignStatusPendingReview {
			return invalidState("Only campaigns awaiting review can be approved")
		}
		if err := Transition(c, models.CampaignStatusActive); err != nil {
			return err
		}
		c.IsVerified = true
		if notes != "" {
			c.VerificationNotes = notes
		}
		if err := m.updateStatus(tx, c, map[string]interface{}{
			"is_verified":        true,
			"verification_notes": c.VerificationNotes,
		}); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "approve campaign")
	}
	return &out, nil
}

// RejectCampaign moves a pending_review campaign to rejected.
func (m *Moderation) RejectCampaign(ctx context.Context, id uint, notes string) (*models.Campaign, error) {
	var out models.Campaign
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if c.Status != models.CampaignStatusPendingReview {
			return invalidState("Only campaigns awaiting review can be rejected")
		}
		if err := Transition(c, models.CampaignStatusRejected); err != nil {
			return err
		}
		if notes != "" {
			c.VerificationNotes = notes
		}
		if err := m.updateStatus(tx, c, map[string]interface{}{
			"verification_notes": c.VerificationNotes,
		}); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "reject campaign")
	}
	return &out, nil
}

// PauseCampaign suspends an active campaign. Allowed for the campaign's
// creator or for admins.
func (m *Moderation) PauseCampaign(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.Campaign, error) {
	var out models.Campaign
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if !isAdmin && c.CreatorID != actorID {
			return unauthorized("Only the campaign creator can pause this campaign")
		}
		if err := Transition(c, models.CampaignStatusPaused); err != nil {
			return err
		}
		if err := m.updateStatus(tx, c, nil); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "pause campaign")
	}
	return &out, nil
}

// ReactivateCampaign resumes a paused campaign. Admin-only: resuming goes
// back through moderation, not the creator.
func (m *Moderation) ReactivateCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	var out models.Campaign
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if c.Status != models.CampaignStatusPaused {
			return invalidState("Only paused campaigns can be reactivated")
		}
		if err := Transition(c, models.CampaignStatusActive); err != nil {
			return err
		}
		if err := m.updateStatus(tx, c, nil); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "reactivate campaign")
	}
	return &out, nil
}

// DeleteCampaign is the admin removal path. Campaigns that have received
// donations are soft-cancelled so the donation history stays auditable;
// unfunded campaigns are removed outright.
func (m *Moderation) DeleteCampaign(ctx context.Context, id uint) (cancelled bool, err error) {
	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if c.RaisedAmount > 0 {
			if err := Transition(c, models.CampaignStatusCancelled); err != nil {
				return err
			}
			if err := m.updateStatus(tx, c, nil); err != nil {
				return err
			}
			cancelled = true
			return nil
		}
		if err := tx.Delete(&models.Campaign{}, c.ID).Error; err != nil {
			return err
		}
		return ApplyCampaignDeleted(tx, c.CauseID)
	})
	if err != nil {
		return false, asDomainError(err, "delete campaign")
	}
	return cancelled, nil
}

// DeleteOwnCampaign is the creator removal path: only their own campaign,
// only before review completes, and only while no money has arrived.
func (m *Moderation) DeleteOwnCampaign(ctx context.Context, id uint, requesterID uint) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := m.loadCampaign(tx, id)
		if err != nil {
			return err
		}
		if c.CreatorID != requesterID {
			return unauthorized("You can only delete your own campaigns")
		}
		if c.RaisedAmount > 0 {
			return invalidState("Cannot delete campaign that has received donations")
		}
		if !Editable(c.Status) {
			return invalidState("Campaign can no longer be deleted, contact support")
		}
		if err := tx.Delete(&models.Campaign{}, c.ID).Error; err != nil {
			return err
		}
		return ApplyCampaignDeleted(tx, c.CauseID)
	})
	return asDomainError(err, "delete own campaign")
}

// ResolveWithdrawal applies an admin decision to a pending withdrawal. The
// balance mutation is the Ledger's contract.
func (m *Moderation) ResolveWithdrawal(ctx context.Context, in ResolveWithdrawalInput) (*models.Withdrawal, error) {
	return m.ledger.ResolveWithdrawal(ctx, in)
}

// asDomainError passes domain errors through and downgrades everything else
// to an opaque internal error, logging the original.
func asDomainError(err error, op string) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	log.Printf("[moderation] %s failed: %v", op, err)
	return &DomainError{Code: CodeInternal, Message: "Something went wrong, please try again"}
}
