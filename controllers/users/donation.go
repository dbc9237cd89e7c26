package users

import (
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

type DonateRequest struct {
	Amount      float64 `json:"amount"`
	Message     string  `json:"message"`
	IsAnonymous bool    `json:"is_anonymous"`
	PaymentRef  string  `json:"payment_ref"`
}

// DonateHandler records a donation against a campaign through the ledger.
func DonateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req DonateRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if req.Amount < setting.MinDonation {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Donation is below the platform minimum"})
		return
	}

	ledger := services.NewLedger(database.DB)
	campaign, err := ledger.RecordDonation(r.Context(), services.RecordDonationInput{
		CampaignID:  campaignID,
		DonorID:     userID,
		Amount:      utils.RoundFloat(req.Amount, 2),
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
		PaymentRef:  req.PaymentRef,
	})
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Thank you for your donation!",
		Data: map[string]interface{}{
			"campaign_id":   campaign.ID,
			"raised_amount": campaign.RaisedAmount,
			"goal_amount":   campaign.GoalAmount,
			"status":        campaign.Status,
			"remaining":     campaign.Remaining(),
		},
	})
}

// MyDonationsHandler lists the authenticated user's donations, newest first.
func MyDonationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	page, limit := utils.Pagination(r)
	db := database.DB

	var total int64
	if err := db.Model(&models.Donation{}).Where("donor_id = ?", userID).Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var donations []models.Donation
	if err := db.Where("donor_id = ?", userID).
		Order("donated_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&donations).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.PagedData("donations", donations, page, limit, total),
	})
}
