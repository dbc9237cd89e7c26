package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// Ledger is the single authority over a campaign's financial state. Nothing
// else writes raised_amount, total_withdrawn, donations or withdrawals.
//
// Every operation runs in a transaction and writes the campaign row
// conditionally on its version column. Two operations racing on the same
// campaign serialize: the loser's compare fails, the transaction rolls back
// (taking any appended rows with it) and the operation retries against fresh
// state. Operations on different campaigns never contend.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

const maxVersionRetries = 3

var errVersionConflict = errors.New("campaign version conflict")

type RecordDonationInput struct {
	CampaignID  uint
	DonorID     uint
	Amount      float64
	Message     string
	IsAnonymous bool
	PaymentRef  string
}

// RecordDonation appends a donation and advances the campaign's raised
// amount. A donation that would push past the goal is rejected, never capped;
// one that lands exactly on the goal completes the campaign.
func (l *Ledger) RecordDonation(ctx context.Context, in RecordDonationInput) (*models.Campaign, error) {
	if in.Amount <= 0 {
		return nil, invalidAmount("Valid donation amount is required")
	}

	var out models.Campaign
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var c models.Campaign
			if err := tx.First(&c, in.CampaignID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("Campaign not found")
				}
				return err
			}

			now := time.Now()
			if err := AcceptsDonations(&c, now); err != nil {
				return err
			}

			remaining := utils.RoundFloat(c.GoalAmount-c.RaisedAmount, 2)
			if in.Amount > remaining {
				return invalidAmount(fmt.Sprintf("Only %.2f left to reach the goal", remaining))
			}

			donation := models.Donation{
				CampaignID:  c.ID,
				DonorID:     in.DonorID,
				Amount:      in.Amount,
				Message:     in.Message,
				IsAnonymous: in.IsAnonymous,
				PaymentRef:  in.PaymentRef,
				DonatedAt:   now,
			}
			if err := tx.Create(&donation).Error; err != nil {
				return err
			}

			newRaised := utils.RoundFloat(c.RaisedAmount+in.Amount, 2)
			newStatus := c.Status
			if newRaised >= c.GoalAmount {
				newStatus = models.CampaignStatusCompleted
			}

			res := tx.Model(&models.Campaign{}).
				Where("id = ? AND version = ?", c.ID, c.Version).
				Updates(map[string]interface{}{
					"raised_amount": newRaised,
					"status":        newStatus,
					"version":       c.Version + 1,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}

			if err := applyDonationStats(tx, &c, in.DonorID, in.Amount); err != nil {
				return err
			}

			c.RaisedAmount = newRaised
			c.Status = newStatus
			c.Version++
			out = c
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			continue
		}
		if err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				return nil, de
			}
			log.Printf("[ledger] record donation failed: %v", err)
			return nil, &DomainError{Code: CodeInternal, Message: "Could not process donation"}
		}
		return &out, nil
	}
	return nil, &DomainError{Code: CodeConflict, Message: "Campaign is busy, please retry"}
}

type RequestWithdrawalInput struct {
	CampaignID  uint
	RequesterID uint
	Amount      float64
	BankDetails models.BankDetails
}

// RequestWithdrawal queues a creator payout request in pending status.
// total_withdrawn is untouched here; only a completed resolution moves it.
// The campaign version is still bumped so concurrent requests re-evaluate the
// available balance one at a time.
func (l *Ledger) RequestWithdrawal(ctx context.Context, in RequestWithdrawalInput) (*models.Withdrawal, error) {
	if in.Amount <= 0 {
		return nil, invalidAmount("Valid withdrawal amount is required")
	}

	var out models.Withdrawal
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var c models.Campaign
			if err := tx.First(&c, in.CampaignID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("Campaign not found")
				}
				return err
			}

			if c.CreatorID != in.RequesterID {
				return unauthorized("Only the campaign creator can request withdrawals")
			}

			available := utils.RoundFloat(c.RaisedAmount-c.TotalWithdrawn, 2)
			if in.Amount > available {
				return invalidAmount("Insufficient funds available for withdrawal")
			}

			w := models.Withdrawal{
				CampaignID:  c.ID,
				Amount:      in.Amount,
				Reference:   utils.GenerateReferenceID(),
				BankDetails: in.BankDetails,
				Status:      models.WithdrawalStatusPending,
				RequestedAt: time.Now(),
			}
			if err := tx.Create(&w).Error; err != nil {
				return err
			}

			res := tx.Model(&models.Campaign{}).
				Where("id = ? AND version = ?", c.ID, c.Version).
				Update("version", c.Version+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}

			out = w
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			continue
		}
		if err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				return nil, de
			}
			log.Printf("[ledger] request withdrawal failed: %v", err)
			return nil, &DomainError{Code: CodeInternal, Message: "Could not process withdrawal request"}
		}
		return &out, nil
	}
	return nil, &DomainError{Code: CodeConflict, Message: "Campaign is busy, please retry"}
}

type ResolveWithdrawalInput struct {
	CampaignID     uint
	WithdrawalID   uint
	Decision       string
	TransactionRef string
	Notes          string
}

// ResolveWithdrawal moves a withdrawal to approved, rejected or completed.
// Only the transition into completed touches total_withdrawn, and it
// re-checks the balance so several pending requests can never jointly
// overdraw. Completed and rejected are terminal: a second resolution of the
// same withdrawal fails closed.
func (l *Ledger) ResolveWithdrawal(ctx context.Context, in ResolveWithdrawalInput) (*models.Withdrawal, error) {
	switch in.Decision {
	case models.WithdrawalStatusApproved, models.WithdrawalStatusRejected, models.WithdrawalStatusCompleted:
	default:
		return nil, invalidState(fmt.Sprintf("Invalid withdrawal decision %q", in.Decision))
	}

	var out models.Withdrawal
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var c models.Campaign
			if err := tx.First(&c, in.CampaignID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("Campaign not found")
				}
				return err
			}

			var w models.Withdrawal
			if err := tx.Where("id = ? AND campaign_id = ?", in.WithdrawalID, c.ID).First(&w).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("Withdrawal request not found")
				}
				return err
			}

			switch w.Status {
			case models.WithdrawalStatusPending:
				// any decision is valid from pending
			case models.WithdrawalStatusApproved:
				if in.Decision != models.WithdrawalStatusCompleted && in.Decision != models.WithdrawalStatusRejected {
					return invalidState("Withdrawal has already been approved")
				}
			default:
				return invalidState("Withdrawal request has already been resolved")
			}

			if in.Decision == models.WithdrawalStatusCompleted {
				newWithdrawn := utils.RoundFloat(c.TotalWithdrawn+w.Amount, 2)
				if newWithdrawn > c.RaisedAmount {
					return invalidState("Withdrawal exceeds funds raised by the campaign")
				}
				res := tx.Model(&models.Campaign{}).
					Where("id = ? AND version = ?", c.ID, c.Version).
					Updates(map[string]interface{}{
						"total_withdrawn": newWithdrawn,
						"version":         c.Version + 1,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errVersionConflict
				}
			}

			now := time.Now()
			w.Status = in.Decision
			w.ProcessedAt = &now
			if in.TransactionRef != "" {
				w.TransactionRef = in.TransactionRef
			}
			if in.Notes != "" {
				w.Notes = in.Notes
			}
			if err := tx.Save(&w).Error; err != nil {
				return err
			}

			out = w
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			continue
		}
		if err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				return nil, de
			}
			log.Printf("[ledger] resolve withdrawal failed: %v", err)
			return nil, &DomainError{Code: CodeInternal, Message: "Could not resolve withdrawal"}
		}
		return &out, nil
	}
	return nil, &DomainError{Code: CodeConflict, Message: "Campaign is busy, please retry"}
}
