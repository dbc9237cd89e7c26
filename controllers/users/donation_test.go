package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anushka2030/Chhaya-Crowdfunding/database"
	"github.com/anushka2030/Chhaya-Crowdfunding/models"
	"github.com/anushka2030/Chhaya-Crowdfunding/utils"
)

// setupHandlerDB swaps database.DB for an in-memory store for the duration of
// the test.
func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Cause{},
		&models.Campaign{},
		&models.CampaignImage{},
		&models.CampaignDocument{},
		&models.Donation{},
		&models.Withdrawal{},
		&models.Setting{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func seedHandlerFixture(t *testing.T, db *gorm.DB) (creator, donor *models.User, campaign *models.Campaign) {
	t.Helper()
	creator = &models.User{Name: "Creator", Email: "creator@example.com", Password: "x"}
	require.NoError(t, db.Create(creator).Error)
	donor = &models.User{Name: "Donor", Email: "donor@example.com", Password: "x"}
	require.NoError(t, db.Create(donor).Error)
	cause := &models.Cause{Name: "Medical", Description: "d", Icon: "heart", IsActive: true}
	require.NoError(t, db.Create(cause).Error)
	campaign = &models.Campaign{
		Title:       "Help",
		Description: "d",
		CreatorID:   creator.ID,
		CauseID:     cause.ID,
		GoalAmount:  10000,
		Currency:    "INR",
		StartDate:   time.Now().Add(-24 * time.Hour),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
		Status:      models.CampaignStatusActive,
	}
	require.NoError(t, db.Create(campaign).Error)
	return creator, donor, campaign
}

// authedJSONRequest builds a request with a JSON body, route vars and an
// authenticated user in context, the way the auth middleware would.
func authedJSONRequest(t *testing.T, method, target string, userID uint, vars map[string]string, body interface{}) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, userID))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestDonateHandler(t *testing.T) {
	db := setupHandlerDB(t)
	_, donor, campaign := seedHandlerFixture(t, db)

	req := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 2500, Message: "good luck"})
	rec := httptest.NewRecorder()
	DonateHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	var fresh models.Campaign
	require.NoError(t, db.First(&fresh, campaign.ID).Error)
	assert.Equal(t, 2500.0, fresh.RaisedAmount)
}

func TestDonateHandler_OvershootRejected(t *testing.T) {
	db := setupHandlerDB(t)
	_, donor, campaign := seedHandlerFixture(t, db)

	req := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 10001})
	rec := httptest.NewRecorder()
	DonateHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "left to reach the goal")

	var fresh models.Campaign
	require.NoError(t, db.First(&fresh, campaign.ID).Error)
	assert.Equal(t, 0.0, fresh.RaisedAmount)
}

func TestDonateHandler_BelowPlatformMinimum(t *testing.T) {
	db := setupHandlerDB(t)
	_, donor, _ := seedHandlerFixture(t, db)
	require.NoError(t, db.Create(&models.Setting{MinGoalAmount: 1000, MinDonation: 10}).Error)

	req := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 5})
	rec := httptest.NewRecorder()
	DonateHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec).Message, "minimum")
}

func TestDonateHandler_SettingsUnreadable(t *testing.T) {
	db := setupHandlerDB(t)
	_, donor, campaign := seedHandlerFixture(t, db)
	require.NoError(t, db.Migrator().DropTable(&models.Setting{}))

	req := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 100})
	rec := httptest.NewRecorder()
	DonateHandler(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	var fresh models.Campaign
	require.NoError(t, db.First(&fresh, campaign.ID).Error)
	assert.Equal(t, 0.0, fresh.RaisedAmount)
}

func TestDonateHandler_Unauthenticated(t *testing.T) {
	setupHandlerDB(t)

	req := httptest.NewRequest(http.MethodPost, "/campaigns/1/donate", bytes.NewReader([]byte(`{"amount":100}`)))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	DonateHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestWithdrawalHandler(t *testing.T) {
	db := setupHandlerDB(t)
	creator, donor, campaign := seedHandlerFixture(t, db)

	donate := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 6000})
	rec := httptest.NewRecorder()
	DonateHandler(rec, donate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := authedJSONRequest(t, http.MethodPost, "/users/campaigns/1/withdraw", creator.ID,
		map[string]string{"id": "1"}, WithdrawalRequest{
			Amount:            6000,
			AccountNumber:     "123456789012",
			IFSCCode:          "HDFC0001234",
			AccountHolderName: "Creator",
		})
	rec = httptest.NewRecorder()
	RequestWithdrawalHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.WithdrawalStatusPending, data["status"])
	assert.Equal(t, "1234****9012", data["account_number"])

	// The request alone moves nothing.
	var fresh models.Campaign
	require.NoError(t, db.First(&fresh, campaign.ID).Error)
	assert.Equal(t, 0.0, fresh.TotalWithdrawn)
}

func TestRequestWithdrawalHandler_OverAvailable(t *testing.T) {
	db := setupHandlerDB(t)
	creator, donor, _ := seedHandlerFixture(t, db)

	donate := authedJSONRequest(t, http.MethodPost, "/campaigns/1/donate", donor.ID,
		map[string]string{"id": "1"}, DonateRequest{Amount: 6000})
	rec := httptest.NewRecorder()
	DonateHandler(rec, donate)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := authedJSONRequest(t, http.MethodPost, "/users/campaigns/1/withdraw", creator.ID,
		map[string]string{"id": "1"}, WithdrawalRequest{
			Amount:            7000,
			AccountNumber:     "123456789012",
			IFSCCode:          "HDFC0001234",
			AccountHolderName: "Creator",
		})
	rec = httptest.NewRecorder()
	RequestWithdrawalHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRequestWithdrawalHandler_InvalidIFSC(t *testing.T) {
	db := setupHandlerDB(t)
	creator, _, _ := seedHandlerFixture(t, db)

	req := authedJSONRequest(t, http.MethodPost, "/users/campaigns/1/withdraw", creator.ID,
		map[string]string{"id": "1"}, WithdrawalRequest{
			Amount:            100,
			AccountNumber:     "123456789012",
			IFSCCode:          "not-a-code",
			AccountHolderName: "Creator",
		})
	rec := httptest.NewRecorder()
	RequestWithdrawalHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
