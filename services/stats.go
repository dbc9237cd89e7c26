package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// Stats owns the denormalized counters on users and causes. Increments happen
// inside the same transaction as the ledger mutation that triggered them; the
// Reconcile* methods are the correctness backstop, rebuilding every counter
// from the append-only source tables.
type Stats struct {
	db *gorm.DB
}

func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

// applyDonationStats runs inside the donation transaction, after the new
// donation row has been appended. campaignsSupported counts distinct
// campaigns, so it only moves on the donor's first donation to this campaign
// (the count includes the row just written).
func applyDonationStats(tx *gorm.DB, c *models.Campaign, donorID uint, amount float64) error {
	var count int64
	if err := tx.Model(&models.Donation{}).
		Where("campaign_id = ? AND donor_id = ?", c.ID, donorID).
		Count(&count).Error; err != nil {
		return err
	}

	donorUpdates := map[string]interface{}{
		"stats_total_donated": gorm.Expr("stats_total_donated + ?", amount),
	}
	if count == 1 {
		donorUpdates["stats_campaigns_supported"] = gorm.Expr("stats_campaigns_supported + 1")
	}
	if err := tx.Model(&models.User{}).Where("id = ?", donorID).Updates(donorUpdates).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.User{}).Where("id = ?", c.CreatorID).
		Update("stats_total_raised", gorm.Expr("stats_total_raised + ?", amount)).Error; err != nil {
		return err
	}

	return tx.Model(&models.Cause{}).Where("id = ?", c.CauseID).
		Update("total_raised", gorm.Expr("total_raised + ?", amount)).Error
}

// ApplyCampaignCreated bumps the creation counters. Runs inside the campaign
// creation transaction.
func ApplyCampaignCreated(tx *gorm.DB, creatorID, causeID uint) error {
	if err := tx.Model(&models.User{}).Where("id = ?", creatorID).
		Update("stats_campaigns_created", gorm.Expr("stats_campaigns_created + 1")).Error; err != nil {
		return err
	}
	return tx.Model(&models.Cause{}).Where("id = ?", causeID).
		Update("campaign_count", gorm.Expr("campaign_count + 1")).Error
}

// ApplyCampaignDeleted reverses the cause counter on hard delete. The
// creator's campaigns_created is left alone (it counts creations, not
// survivors); reconciliation redefines it from surviving rows if needed.
func ApplyCampaignDeleted(tx *gorm.DB, causeID uint) error {
	return tx.Model(&models.Cause{}).Where("id = ?", causeID).
		Update("campaign_count", gorm.Expr("campaign_count - 1")).Error
}

// ReconcileCampaign rebuilds a campaign's cached aggregates from its
// donation and withdrawal rows. This is the recovery path for invariant
// drift: raised_amount must equal the donation sum and total_withdrawn the
// completed-withdrawal sum at all times.
func (s *Stats) ReconcileCampaign(ctx context.Context, campaignID uint) (*models.Campaign, error) {
	var out models.Campaign
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Campaign
		if err := tx.First(&c, campaignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Campaign not found")
			}
			return err
		}

		var raised float64
		if err := tx.Model(&models.Donation{}).Where("campaign_id = ?", c.ID).
			Select("COALESCE(SUM(amount), 0)").Scan(&raised).Error; err != nil {
			return err
		}
		var withdrawn float64
		if err := tx.Model(&models.Withdrawal{}).
			Where("campaign_id = ? AND status = ?", c.ID, models.WithdrawalStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").Scan(&withdrawn).Error; err != nil {
			return err
		}

		raised = utils.RoundFloat(raised, 2)
		withdrawn = utils.RoundFloat(withdrawn, 2)
		if raised == c.RaisedAmount && withdrawn == c.TotalWithdrawn {
			out = c
			return nil
		}

		log.Printf("[stats] campaign %d drift: raised %.2f->%.2f withdrawn %.2f->%.2f",
			c.ID, c.RaisedAmount, raised, c.TotalWithdrawn, withdrawn)

		res := tx.Model(&models.Campaign{}).
			Where("id = ? AND version = ?", c.ID, c.Version).
			Updates(map[string]interface{}{
				"raised_amount":   raised,
				"total_withdrawn": withdrawn,
				"version":         c.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &DomainError{Code: CodeConflict, Message: "Campaign is busy, please retry"}
		}
		c.RaisedAmount = raised
		c.TotalWithdrawn = withdrawn
		c.Version++
		out = c
		return nil
	})
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		log.Printf("[stats] reconcile campaign %d failed: %v", campaignID, err)
		return nil, &DomainError{Code: CodeInternal, Message: "Reconciliation failed"}
	}
	return &out, nil
}

// ReconcileCause recomputes a cause's campaign count and raised total from
// the campaign table.
func (s *Stats) ReconcileCause(ctx context.Context, causeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Campaign{}).Where("cause_id = ?", causeID).Count(&count).Error; err != nil {
			return err
		}
		var raised float64
		if err := tx.Model(&models.Campaign{}).Where("cause_id = ?", causeID).
			Select("COALESCE(SUM(raised_amount), 0)").Scan(&raised).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cause{}).Where("id = ?", causeID).Updates(map[string]interface{}{
			"campaign_count": count,
			"total_raised":   utils.RoundFloat(raised, 2),
		}).Error
	})
}

// ReconcileUser recomputes a user's stats from the donation and campaign
// tables. campaigns_supported is defined as distinct campaigns donated to;
// campaigns_created as campaigns currently owned.
func (s *Stats) ReconcileUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donated float64
		if err := tx.Model(&models.Donation{}).Where("donor_id = ?", userID).
			Select("COALESCE(SUM(amount), 0)").Scan(&donated).Error; err != nil {
			return err
		}
		var supported int64
		if err := tx.Model(&models.Donation{}).Where("donor_id = ?", userID).
			Distinct("campaign_id").Count(&supported).Error; err != nil {
			return err
		}
		var raised float64
		if err := tx.Model(&models.Campaign{}).Where("creator_id = ?", userID).
			Select("COALESCE(SUM(raised_amount), 0)").Scan(&raised).Error; err != nil {
			return err
		}
		var created int64
		if err := tx.Model(&models.Campaign{}).Where("creator_id = ?", userID).Count(&created).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"stats_total_donated":       utils.RoundFloat(donated, 2),
			"stats_campaigns_supported": supported,
			"stats_total_raised":        utils.RoundFloat(raised, 2),
			"stats_campaigns_created":   created,
		}).Error
	})
}
