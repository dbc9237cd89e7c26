package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// ListCausesHandler returns all active causes with their cached aggregates.
func ListCausesHandler(w http.ResponseWriter, r *http.Request) {
	var causes []models.Cause
	if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&causes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: causes})
}

// CauseCampaignsHandler lists public campaigns under one cause.
func CauseCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	causeID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid cause id"})
		return
	}

	var cause models.Cause
	if err := database.DB.Where("id = ? AND is_active = ?", causeID, true).First(&cause).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Cause not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	page, limit := utils.Pagination(r)

	var total int64
	base := database.DB.Model(&models.Campaign{}).
		Where("cause_id = ? AND status IN (?)", cause.ID, publicStatuses)
	if err := base.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var campaigns []models.Campaign
	if err := database.DB.
		Where("cause_id = ? AND status IN (?)", cause.ID, publicStatuses).
		Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&campaigns).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	data := utils.PagedData("campaigns", campaigns, page, limit, total)
	data["cause"] = cause
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    data,
	})
}

// PublicProfileHandler shows another user's profile when they opted in.
func PublicProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !user.PublicProfile {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var campaigns []models.Campaign
	if err := database.DB.
		Where("creator_id = ? AND status IN (?)", user.ID, publicStatuses).
		Preload("Images").
		Order("created_at DESC").Limit(12).
		Find(&campaigns).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user": map[string]interface{}{
				"id":              user.ID,
				"name":            user.Name,
				"bio":             user.Bio,
				"is_verified":     user.IsVerified,
				"profile_picture": utils.GetStringValue(user.ProfilePicture),
				"stats":           user.Stats,
			},
			"campaigns": campaigns,
		},
	})
}
