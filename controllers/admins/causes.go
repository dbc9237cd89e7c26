package admins

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

type CauseRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCauseHandler registers a new cause.
func CreateCauseHandler(w http.ResponseWriter, r *http.Request) {
	var req CauseRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	cause := models.Cause{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}
	if req.Color != "" {
		cause.Color = req.Color
	}
	if req.IsActive != nil {
		cause.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&cause).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "A cause with this name already exists"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Cause created", Data: cause})
}

// UpdateCauseHandler edits an existing cause. Deactivating a cause stops new
// campaigns but leaves existing ones untouched.
func UpdateCauseHandler(w http.ResponseWriter, r *http.Request) {
	causeID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid cause id"})
		return
	}

	var req CauseRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var cause models.Cause
	if err := database.DB.First(&cause, causeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Cause not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&cause).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cause updated", Data: cause})
}

// DeleteCauseHandler removes a cause that no campaign references.
func DeleteCauseHandler(w http.ResponseWriter, r *http.Request) {
	causeID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid cause id"})
		return
	}

	var count int64
	if err := database.DB.Model(&models.Campaign{}).Where("cause_id = ?", causeID).Count(&count).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if count > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cause has campaigns and cannot be deleted, deactivate it instead"})
		return
	}

	res := database.DB.Delete(&models.Cause{}, causeID)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Cause not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cause deleted"})
}
