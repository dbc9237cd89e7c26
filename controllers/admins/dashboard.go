package admins

import (
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// DashboardHandler returns platform-wide totals for the back office.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalUsers, totalCampaigns, pendingReview, activeCampaigns, pendingWithdrawals int64
	var totalRaised, totalWithdrawn float64

	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Model(&models.Campaign{}).Count(&totalCampaigns).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	_ = db.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusPendingReview).Count(&pendingReview).Error
	_ = db.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive).Count(&activeCampaigns).Error
	_ = db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&pendingWithdrawals).Error
	_ = db.Model(&models.Campaign{}).Select("COALESCE(SUM(raised_amount), 0)").Scan(&totalRaised).Error
	_ = db.Model(&models.Campaign{}).Select("COALESCE(SUM(total_withdrawn), 0)").Scan(&totalWithdrawn).Error

	var donationCount int64
	_ = db.Model(&models.Donation{}).Count(&donationCount).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"users":               totalUsers,
			"campaigns":           totalCampaigns,
			"pending_review":      pendingReview,
			"active_campaigns":    activeCampaigns,
			"pending_withdrawals": pendingWithdrawals,
			"donations":           donationCount,
			"total_raised":        utils.RoundFloat(totalRaised, 2),
			"total_withdrawn":     utils.RoundFloat(totalWithdrawn, 2),
		},
	})
}
