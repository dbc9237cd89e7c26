package admins

import (
	"net/http"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// GetSettingsHandler returns the platform configuration row.
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: setting})
}

type UpdateSettingsRequest struct {
	MinGoalAmount  *float64 `json:"min_goal_amount"`
	MinDonation    *float64 `json:"min_donation"`
	Maintenance    *bool    `json:"maintenance"`
	ClosedRegister *bool    `json:"closed_register"`
}

// UpdateSettingsHandler edits the platform configuration. The row is created
// on first write.
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if req.MinGoalAmount != nil {
		if *req.MinGoalAmount <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "min_goal_amount must be positive"})
			return
		}
		setting.MinGoalAmount = utils.RoundFloat(*req.MinGoalAmount, 2)
	}
	if req.MinDonation != nil {
		if *req.MinDonation <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "min_donation must be positive"})
			return
		}
		setting.MinDonation = utils.RoundFloat(*req.MinDonation, 2)
	}
	if req.Maintenance != nil {
		setting.Maintenance = *req.Maintenance
	}
	if req.ClosedRegister != nil {
		setting.ClosedRegister = *req.ClosedRegister
	}

	if err := database.DB.Save(setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Settings updated", Data: setting})
}
