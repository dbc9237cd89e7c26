package users

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushka2030/Chhaya-Crowdfunding/models"
)

func TestCreateCampaignHandler_BeneficiaryAndTags(t *testing.T) {
	db := setupHandlerDB(t)
	creator, _, _ := seedHandlerFixture(t, db)

	req := authedJSONRequest(t, http.MethodPost, "/users/campaigns", creator.ID, nil,
		CreateCampaignRequest{
			Title:                   "Surgery fund",
			Description:             "d",
			CauseID:                 1,
			GoalAmount:              5000,
			EndDate:                 time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02"),
			BeneficiaryName:         "Asha",
			BeneficiaryRelationship: models.RelationshipFamily,
			BeneficiaryAge:          67,
			BeneficiaryDetails:      "  Needs a hip replacement  ",
			Tags:                    []string{"medical", " urgent ", "medical", ""},
		})
	rec := httptest.NewRecorder()
	CreateCampaignHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var fresh models.Campaign
	require.NoError(t, db.Order("id DESC").First(&fresh).Error)
	assert.Equal(t, 67, fresh.Beneficiary.Age)
	assert.Equal(t, "Needs a hip replacement", fresh.Beneficiary.Details)
	assert.Equal(t, models.TagList{"medical", "urgent"}, fresh.Tags)
}

func TestCreateCampaignHandler_InvalidBeneficiaryAge(t *testing.T) {
	db := setupHandlerDB(t)
	creator, _, _ := seedHandlerFixture(t, db)

	req := authedJSONRequest(t, http.MethodPost, "/users/campaigns", creator.ID, nil,
		CreateCampaignRequest{
			Title:                   "Surgery fund",
			Description:             "d",
			CauseID:                 1,
			GoalAmount:              5000,
			EndDate:                 time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02"),
			BeneficiaryName:         "Asha",
			BeneficiaryRelationship: models.RelationshipFamily,
			BeneficiaryAge:          200,
		})
	rec := httptest.NewRecorder()
	CreateCampaignHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec).Message, "beneficiary age")
}

func TestUpdateCampaignHandler_BeneficiaryAndTags(t *testing.T) {
	db := setupHandlerDB(t)
	creator, _, _ := seedHandlerFixture(t, db)

	draft := &models.Campaign{
		Title:       "Draft",
		Description: "d",
		CreatorID:   creator.ID,
		CauseID:     1,
		GoalAmount:  5000,
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
		Status:      models.CampaignStatusPendingReview,
		Tags:        models.TagList{"old"},
	}
	require.NoError(t, db.Create(draft).Error)

	age := 12
	details := "School fees"
	tags := []string{"education", "children"}
	req := authedJSONRequest(t, http.MethodPut, "/users/campaigns/2", creator.ID,
		map[string]string{"id": "2"}, UpdateCampaignRequest{
			BeneficiaryAge:     &age,
			BeneficiaryDetails: &details,
			Tags:               &tags,
		})
	rec := httptest.NewRecorder()
	UpdateCampaignHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var fresh models.Campaign
	require.NoError(t, db.First(&fresh, draft.ID).Error)
	assert.Equal(t, 12, fresh.Beneficiary.Age)
	assert.Equal(t, "School fees", fresh.Beneficiary.Details)
	assert.Equal(t, models.TagList{"education", "children"}, fresh.Tags)
}
