package users

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

const (
	maxUploadBytes = 5 << 20 // per-file cap, the body limit still applies
	presignExpiry  = 7 * 24 * 3600
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

var allowedDocumentExt = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
}

// ownedCampaign loads a campaign and checks the requester created it.
func ownedCampaign(w http.ResponseWriter, r *http.Request) (*models.Campaign, uint, bool) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return nil, 0, false
	}
	campaignID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid campaign id"})
		return nil, 0, false
	}
	var campaign models.Campaign
	if err := database.DB.First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Campaign not found"})
			return nil, 0, false
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return nil, 0, false
	}
	if campaign.CreatorID != userID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only manage your own campaigns"})
		return nil, 0, false
	}
	return &campaign, userID, true
}

// UploadCampaignImageHandler accepts a multipart image, stores it in R2 and
// records a CampaignImage row. The first image becomes primary.
func UploadCampaignImageHandler(w http.ResponseWriter, r *http.Request) {
	campaign, _, ok := ownedCampaign(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be at most 5MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported image type"})
		return
	}

	objectName := fmt.Sprintf("campaigns/%d/images/%s%s", campaign.ID, uuid.New().String(), ext)
	url, err := utils.UploadAndPresign(objectName, file, header.Size, presignExpiry)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Upload failed"})
		return
	}

	var existing int64
	_ = database.DB.Model(&models.CampaignImage{}).Where("campaign_id = ?", campaign.ID).Count(&existing).Error

	image := models.CampaignImage{
		CampaignID: campaign.ID,
		URL:        url,
		Caption:    r.FormValue("caption"),
		IsPrimary:  existing == 0,
	}
	if err := database.DB.Create(&image).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Image uploaded", Data: image})
}

// UploadCampaignDocumentHandler stores a verification document for review.
// Documents are private; the stored URL is only presigned for admins.
func UploadCampaignDocumentHandler(w http.ResponseWriter, r *http.Request) {
	campaign, _, ok := ownedCampaign(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "document file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Document must be at most 5MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedDocumentExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported document type"})
		return
	}

	docType := r.FormValue("type")
	switch docType {
	case models.DocumentTypeIdentity, models.DocumentTypeMedical, models.DocumentTypeLegal:
	default:
		docType = models.DocumentTypeOther
	}

	objectName := fmt.Sprintf("campaigns/%d/documents/%s%s", campaign.ID, uuid.New().String(), ext)
	if err := utils.UploadToStorage(objectName, file, header.Size); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Upload failed"})
		return
	}

	doc := models.CampaignDocument{
		CampaignID: campaign.ID,
		Type:       docType,
		URL:        objectName,
		Name:       header.Filename,
	}
	if err := database.DB.Create(&doc).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Document uploaded", Data: doc})
}

// UploadAvatarHandler replaces the user's profile picture.
func UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "avatar file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Avatar must be at most 5MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported image type"})
		return
	}

	objectName := fmt.Sprintf("users/%d/avatar/%s%s", userID, uuid.New().String(), ext)
	url, err := utils.UploadAndPresign(objectName, file, header.Size, presignExpiry)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Upload failed"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_picture", url).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Avatar updated", Data: map[string]interface{}{"profile_picture": url}})
}
