package admins

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// ListCampaignsHandler lists campaigns for moderation, filterable by status.
func ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r)
	q := r.URL.Query()

	db := database.DB.Model(&models.Campaign{})
	if status := q.Get("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if causeID := q.Get("cause_id"); causeID != "" {
		if id, err := strconv.ParseUint(causeID, 10, 32); err == nil {
			db = db.Where("cause_id = ?", uint(id))
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var campaigns []models.Campaign
	if err := db.Preload("Creator").Preload("Cause").Preload("Documents").
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

type ReviewRequest struct {
	Notes string `json:"notes"`
}

// ApproveCampaignHandler activates a campaign awaiting review.
func ApproveCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	var req ReviewRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	mod := services.NewModeration(database.DB)
	campaign, err := mod.ApproveCampaign(r.Context(), campaignID, req.Notes)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign approved", Data: campaign})
}

// RejectCampaignHandler rejects a campaign awaiting review.
func RejectCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	var req ReviewRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Notes == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Rejection notes are required"})
		return
	}

	mod := services.NewModeration(database.DB)
	campaign, err := mod.RejectCampaign(r.Context(), campaignID, req.Notes)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign rejected", Data: campaign})
}

// PauseCampaignHandler suspends an active campaign (admin path).
func PauseCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	mod := services.NewModeration(database.DB)
	campaign, err := mod.PauseCampaign(r.Context(), campaignID, 0, true)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign paused", Data: campaign})
}

// ReactivateCampaignHandler resumes a paused campaign.
func ReactivateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	mod := services.NewModeration(database.DB)
	campaign, err := mod.ReactivateCampaign(r.Context(), campaignID)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign reactivated", Data: campaign})
}

// DeleteCampaignHandler removes a campaign: funded ones are cancelled to keep
// the donation history, unfunded ones are hard-deleted.
func DeleteCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	mod := services.NewModeration(database.DB)
	cancelled, err := mod.DeleteCampaign(r.Context(), campaignID)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	msg := "Campaign deleted"
	if cancelled {
		msg = "Campaign cancelled (donations exist, history kept)"
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: msg, Data: map[string]interface{}{"cancelled": cancelled}})
}

// DocumentURLHandler presigns a verification document for review.
func DocumentURLHandler(w http.ResponseWriter, r *http.Request) {
	docID, err := utils.PathID(r, "docID")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid document id"})
		return
	}

	var doc models.CampaignDocument
	if err := database.DB.First(&doc, docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Document not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	url, err := utils.GenerateSignedURL(doc.URL, 15*60)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not presign document"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{"url": url}})
}
