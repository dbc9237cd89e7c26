package admins

import (
	"log"
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/services"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// ReconcileCampaignHandler rebuilds one campaign's cached aggregates from its
// donation and withdrawal rows.
func ReconcileCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return
	}

	stats := services.NewStats(database.DB)
	campaign, err := stats.ReconcileCampaign(r.Context(), campaignID)
	if err != nil {
		status, msg := services.HTTPError(err)
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Campaign reconciled", Data: campaign})
}

// ReconcileAllHandler walks every campaign, cause and user and rebuilds their
// cached counters. Heavy; meant for operator use after an incident.
func ReconcileAllHandler(w http.ResponseWriter, r *http.Request) {
	stats := services.NewStats(database.DB)
	db := database.DB

	var campaignIDs []uint
	if err := db.Model(&models.Campaign{}).Pluck("id", &campaignIDs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	var causeIDs []uint
	if err := db.Model(&models.Cause{}).Pluck("id", &causeIDs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	var userIDs []uint
	if err := db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var failed int
	for _, id := range campaignIDs {
		if _, err := stats.ReconcileCampaign(r.Context(), id); err != nil {
			log.Printf("[reconcile] campaign %d: %v", id, err)
			failed++
		}
	}
	for _, id := range causeIDs {
		if err := stats.ReconcileCause(r.Context(), id); err != nil {
			log.Printf("[reconcile] cause %d: %v", id, err)
			failed++
		}
	}
	for _, id := range userIDs {
		if err := stats.ReconcileUser(r.Context(), id); err != nil {
			log.Printf("[reconcile] user %d: %v", id, err)
			failed++
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Reconciliation finished",
		Data: map[string]interface{}{
			"campaigns": len(campaignIDs),
			"causes":    len(causeIDs),
			"users":     len(userIDs),
			"failed":    failed,
		},
	})
}
