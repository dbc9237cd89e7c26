package admins

import (
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// ListWithdrawalsHandler shows the payout queue, filterable by status.
func ListWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r)

	db := database.DB.Model(&models.Withdrawal{})
	if status := r.URL.Query().Get("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var withdrawals []models.Withdrawal
	if err := db.Order("requested_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.PagedData("withdrawals", withdrawals, page, limit, total),
	})
}

type ResolveWithdrawalRequest struct {
	Decision       string `json:"decision" validate:"required"`
	TransactionRef string `json:"transaction_ref"`
	Notes          string `json:"notes"`
}

// ResolveWithdrawalHandler applies an admin decision (approved, rejected or
// completed) to a withdrawal. Only a completed decision moves money.
func ResolveWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}
	withdrawalID, err := utils.PathID(r, "withdrawalID")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	var req ResolveWithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Decision == models.WithdrawalStatusCompleted && req.TransactionRef == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "transaction_ref is required to complete a withdrawal"})
		return
	}

	mod := services.NewModeration(database.DB)
	withdrawal, err := mod.ResolveWithdrawal(r.Context(), services.ResolveWithdrawalInput{
		CampaignID:     campaignID,
		WithdrawalID:   withdrawalID,
		Decision:       req.Decision,
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	})
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal " + withdrawal.Status, Data: withdrawal})
}
