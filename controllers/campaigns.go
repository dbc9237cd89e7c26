package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// Public, unauthenticated browse endpoints. Only active and completed
// campaigns are visible here; drafts, paused and moderated-out campaigns
// never leave the owner/admin surfaces.

var publicStatuses = []string{models.CampaignStatusActive, models.CampaignStatusCompleted}

// BrowseCampaignsHandler lists public campaigns with filters and pagination.
// Supported query params: cause_id, status (active|completed), urgent, search,
// sort (newest|ending_soon|most_funded), page, limit.
func BrowseCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r)
	q := r.URL.Query()

	db := database.DB.Model(&models.Campaign{})

	if status := q.Get("status"); status != "" {
		if status != models.CampaignStatusActive && status != models.CampaignStatusCompleted {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "status must be active or completed"})
			return
		}
		db = db.Where("status = ?", status)
	} else {
		db = db.Where("status IN (?)", publicStatuses)
	}

	if causeID := q.Get("cause_id"); causeID != "" {
		id, err := strconv.ParseUint(causeID, 10, 32)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid cause_id"})
			return
		}
		db = db.Where("cause_id = ?", uint(id))
	}

	if q.Get("urgent") == "true" {
		db = db.Where("is_urgent = ?", true)
	}

	if search := strings.TrimSpace(q.Get("search")); search != "" {
		pattern := "%" + search + "%"
		db = db.Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}

	switch q.Get("sort") {
	case "ending_soon":
		db = db.Order("end_date ASC")
	case "most_funded":
		db = db.Order("raised_amount DESC")
	default:
		db = db.Order("created_at DESC")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var campaigns []models.Campaign
	if err := db.Preload("Images").Preload("Cause").
		Offset((page - 1) * limit).Limit(limit).
		Find(&campaigns).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.PagedData("campaigns", campaigns, page, limit, total),
	})
}

// CampaignDetailHandler returns a single public campaign with its images,
// cause and recent donations. Anonymous donations hide the donor.
func CampaignDetailHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}

	var campaign models.Campaign
	err = database.DB.
		Preload("Images").
		Preload("Cause").
		Preload("Creator").
		Where("status IN (?)", publicStatuses).
		First(&campaign, campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Campaign not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var donations []models.Donation
	if err := database.DB.Where("campaign_id = ?", campaign.ID).
		Preload("Donor").
		Order("donated_at DESC").Limit(20).
		Find(&donations).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	type donorView struct {
		Amount    float64 `json:"amount"`
		Message   string  `json:"message,omitempty"`
		DonorName string  `json:"donor_name"`
		DonatedAt string  `json:"donated_at"`
	}
	recent := make([]donorView, 0, len(donations))
	for _, d := range donations {
		name := "Anonymous"
		if !d.IsAnonymous && d.Donor != nil {
			name = d.Donor.Name
		}
		recent = append(recent, donorView{
			Amount:    d.Amount,
			Message:   d.Message,
			DonorName: name,
			DonatedAt: d.DonatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	var donorCount int64
	_ = database.DB.Model(&models.Donation{}).Where("campaign_id = ?", campaign.ID).
		Distinct("donor_id").Count(&donorCount).Error

	// Creator details are trimmed for the public surface
	creator := map[string]interface{}{}
	if campaign.Creator != nil {
		creator["id"] = campaign.Creator.ID
		creator["name"] = campaign.Creator.Name
		creator["is_verified"] = campaign.Creator.IsVerified
		if campaign.Creator.PublicProfile {
			creator["bio"] = campaign.Creator.Bio
			creator["profile_picture"] = utils.GetStringValue(campaign.Creator.ProfilePicture)
		}
	}
	campaign.Creator = nil

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"campaign":         campaign,
			"creator":          creator,
			"recent_donations": recent,
			"donor_count":      donorCount,
			"remaining":        campaign.Remaining(),
			"progress":         utils.ProgressPercent(campaign.RaisedAmount, campaign.GoalAmount),
		},
	})
}
