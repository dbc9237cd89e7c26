package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

type CreateCampaignRequest struct {
	Title                   string   `json:"title" validate:"required"`
	Description             string   `json:"description" validate:"required"`
	CauseID                 uint     `json:"cause_id"`
	GoalAmount              float64  `json:"goal_amount"`
	EndDate                 string   `json:"end_date" validate:"required"`
	BeneficiaryName         string   `json:"beneficiary_name" validate:"required,nameok"`
	BeneficiaryRelationship string   `json:"beneficiary_relationship" validate:"required"`
	BeneficiaryAge          int      `json:"beneficiary_age"`
	BeneficiaryDetails      string   `json:"beneficiary_details"`
	IsUrgent                bool     `json:"is_urgent"`
	Tags                    []string `json:"tags"`
}

// CreateCampaignHandler creates a campaign in pending_review status. Goal and
// dates are validated against platform settings; the cause must exist and be
// active.
func CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateCampaignRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	setting, err := models.GetSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if req.GoalAmount < setting.MinGoalAmount {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Goal amount must be at least " + strconv.FormatFloat(setting.MinGoalAmount, 'f', 2, 64),
		})
		return
	}

	if !models.ValidRelationship(req.BeneficiaryRelationship) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid beneficiary relationship"})
		return
	}
	if req.BeneficiaryAge < 0 || req.BeneficiaryAge > 150 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid beneficiary age"})
		return
	}

	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		// accept plain dates too
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid end_date, expected RFC3339 or YYYY-MM-DD"})
			return
		}
	}
	if !endDate.After(time.Now()) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "End date must be in the future"})
		return
	}

	var cause models.Cause
	if err := db.Where("id = ? AND is_active = ?", req.CauseID, true).First(&cause).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cause not found or inactive"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	campaign := models.Campaign{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatorID:   userID,
		CauseID:     cause.ID,
		Beneficiary: models.Beneficiary{
			Name:         strings.TrimSpace(req.BeneficiaryName),
			Relationship: req.BeneficiaryRelationship,
			Age:          req.BeneficiaryAge,
			Details:      strings.TrimSpace(req.BeneficiaryDetails),
		},
		GoalAmount: utils.RoundFloat(req.GoalAmount, 2),
		StartDate:  time.Now(),
		EndDate:    endDate,
		Status:     models.CampaignStatusPendingReview,
		IsUrgent:   req.IsUrgent,
		Tags:       models.NormalizeTags(req.Tags),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}
		return services.ApplyCampaignCreated(tx, userID, cause.ID)
	})
	if err != nil {
		log.Printf("[campaign] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create campaign"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Campaign submitted for review",
		Data:    campaign,
	})
}

type UpdateCampaignRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	GoalAmount         *float64  `json:"goal_amount"`
	EndDate            *string   `json:"end_date"`
	BeneficiaryAge     *int      `json:"beneficiary_age"`
	BeneficiaryDetails *string   `json:"beneficiary_details"`
	IsUrgent           *bool     `json:"is_urgent"`
	Tags               *[]string `json:"tags"`
}

// UpdateCampaignHandler edits structural fields while the campaign is still
// editable (draft or pending_review). Financial fields are never touched here.
func UpdateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}

	var req UpdateCampaignRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var campaign models.Campaign
	if err := db.First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Campaign not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if campaign.CreatorID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only edit your own campaigns"})
		return
	}
	if !services.Editable(campaign.Status) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Campaign can no longer be edited"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.GoalAmount != nil {
		setting, err := models.GetSetting(db)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		if *req.GoalAmount < setting.MinGoalAmount {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Goal amount is below the platform minimum"})
			return
		}
		updates["goal_amount"] = utils.RoundFloat(*req.GoalAmount, 2)
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			endDate, err = time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid end_date, expected RFC3339 or YYYY-MM-DD"})
				return
			}
		}
		if !endDate.After(time.Now()) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "End date must be in the future"})
			return
		}
		updates["end_date"] = endDate
	}
	if req.BeneficiaryAge != nil {
		if *req.BeneficiaryAge < 0 || *req.BeneficiaryAge > 150 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid beneficiary age"})
			return
		}
		updates["beneficiary_age"] = *req.BeneficiaryAge
	}
	if req.BeneficiaryDetails != nil {
		updates["beneficiary_details"] = strings.TrimSpace(*req.BeneficiaryDetails)
	}
	if req.IsUrgent != nil {
		updates["is_urgent"] = *req.IsUrgent
	}
	if req.Tags != nil {
		updates["tags"] = models.NormalizeTags(*req.Tags)
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}
	updates["version"] = campaign.Version + 1

	res := db.Model(&models.Campaign{}).
		Where("id = ? AND version = ?", campaign.ID, campaign.Version).
		Updates(updates)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Campaign is busy, please retry"})
		return
	}

	if err := db.First(&campaign, campaign.ID).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign updated", Data: campaign})
}

// MyCampaignsHandler lists the authenticated user's campaigns, newest first.
func MyCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	page, limit := utils.Pagination(r)
	db := database.DB

	var total int64
	if err := db.Model(&models.Campaign{}).Where("creator_id = ?", userID).Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var campaigns []models.Campaign
	if err := db.Where("creator_id = ?", userID).
		Preload("Images").Preload("Cause").
		Order("created_at DESC").
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

// DeleteCampaignHandler is the creator's delete path, guarded by the
// moderation service: own campaign, still editable, no donations.
func DeleteCampaignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}

	mod := services.NewModeration(database.DB)
	if err := mod.DeleteOwnCampaign(r.Context(), campaignID, userID); err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign deleted"})
}

// PauseCampaignHandler lets the creator suspend their own active campaign.
func PauseCampaignHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}

	mod := services.NewModeration(database.DB)
	campaign, err := mod.PauseCampaign(r.Context(), campaignID, userID, false)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign paused", Data: campaign})
}
