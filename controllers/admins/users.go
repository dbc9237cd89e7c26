package admins

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// ListUsersHandler lists platform users with optional search.
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r)

	db := database.DB.Model(&models.User{})
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var users []models.User
	if err := db.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    utils.PagedData("users", users, page, limit, total),
	})
}

// VerifyUserHandler marks a user as identity-verified.
func VerifyUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_verified", true)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User verified"})
}

// DeleteUserHandler removes a user account. Users with campaigns holding funds
// cannot be deleted; their campaigns must be resolved first.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		var holding int64
		if err := tx.Model(&models.Campaign{}).
			Where("creator_id = ? AND raised_amount > total_withdrawn", userID).
			Count(&holding).Error; err != nil {
			return err
		}
		if holding > 0 {
			return errHoldingFunds
		}

		if err := tx.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		if errors.Is(err, errHoldingFunds) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "User has campaigns holding funds, resolve them first"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}

var errHoldingFunds = errors.New("user holds funds")
