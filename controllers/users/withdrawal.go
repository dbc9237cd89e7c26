package users

import (
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

type WithdrawalRequest struct {
	Amount            float64 `json:"amount"`
	AccountNumber     string  `json:"account_number" validate:"required"`
	IFSCCode          string  `json:"ifsc_code" validate:"required,ifsc"`
	AccountHolderName string  `json:"account_holder_name" validate:"required,nameok"`
}

// RequestWithdrawalHandler queues a payout request for the campaign creator.
func RequestWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
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

	var req WithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	ledger := services.NewLedger(database.DB)
	withdrawal, err := ledger.RequestWithdrawal(r.Context(), services.RequestWithdrawalInput{
		CampaignID:  campaignID,
		RequesterID: userID,
		Amount:      utils.RoundFloat(req.Amount, 2),
		BankDetails: models.BankDetails{
			AccountNumber:     req.AccountNumber,
			IFSCCode:          req.IFSCCode,
			AccountHolderName: req.AccountHolderName,
		},
	})
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal request submitted",
		Data: map[string]interface{}{
			"id":             withdrawal.ID,
			"reference":      withdrawal.Reference,
			"amount":         withdrawal.Amount,
			"status":         withdrawal.Status,
			"account_number": models.MaskAccountNumber(withdrawal.BankDetails.AccountNumber),
			"requested_at":   withdrawal.RequestedAt,
		},
	})
}

// MyWithdrawalsHandler lists withdrawal requests across the user's campaigns.
func MyWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	page, limit := utils.Pagination(r)
	db := database.DB

	sub := db.Model(&models.Campaign{}).Select("id").Where("creator_id = ?", userID)

	var total int64
	if err := db.Model(&models.Withdrawal{}).Where("campaign_id IN (?)", sub).Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var withdrawals []models.Withdrawal
	if err := db.Where("campaign_id IN (?)", sub).
		Order("requested_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Mask payout destinations on the way out
	type withdrawalView struct {
		models.Withdrawal
		MaskedAccount string `json:"masked_account"`
	}
	views := make([]withdrawalView, 0, len(withdrawals))
	for _, wd := range withdrawals {
		wd.BankDetails.AccountNumber = models.MaskAccountNumber(wd.BankDetails.AccountNumber)
		views = append(views, withdrawalView{Withdrawal: wd, MaskedAccount: wd.BankDetails.AccountNumber})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.PagedData("withdrawals", views, page, limit, total),
	})
}

// MyTotalRaisedHandler reports aggregate figures across the user's campaigns.
func MyTotalRaisedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var raised, withdrawn float64
	if err := db.Model(&models.Campaign{}).Where("creator_id = ?", userID).
		Select("COALESCE(SUM(raised_amount), 0)").Scan(&raised).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Model(&models.Campaign{}).Where("creator_id = ?", userID).
		Select("COALESCE(SUM(total_withdrawn), 0)").Scan(&withdrawn).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"total_raised":    utils.RoundFloat(raised, 2),
			"total_withdrawn": utils.RoundFloat(withdrawn, 2),
			"available":       utils.RoundFloat(raised-withdrawn, 2),
		},
	})
}
