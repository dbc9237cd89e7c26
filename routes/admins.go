package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/anushka2030/Chhaya-Crowdfunding/controllers/admins"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
)

func SetAdminRoutes(api *mux.Router) {
	// Admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.LoginHandler))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.DashboardHandler)).Methods(http.MethodGet)

	// Campaign moderation
	adminRouter.Handle("/campaigns", http.HandlerFunc(admins.ListCampaignsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/campaigns/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveCampaignHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/campaigns/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectCampaignHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/campaigns/{id:[0-9]+}/pause", http.HandlerFunc(admins.PauseCampaignHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/campaigns/{id:[0-9]+}/reactivate", http.HandlerFunc(admins.ReactivateCampaignHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/campaigns/{id:[0-9]+}", http.HandlerFunc(admins.DeleteCampaignHandler)).Methods(http.MethodDelete)
	adminRouter.Handle("/documents/{docID:[0-9]+}/url", http.HandlerFunc(admins.DocumentURLHandler)).Methods(http.MethodGet)

	// Withdrawal queue
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.ListWithdrawalsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/campaigns/{id:[0-9]+}/withdrawals/{withdrawalID:[0-9]+}/resolve", http.HandlerFunc(admins.ResolveWithdrawalHandler)).Methods(http.MethodPut)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.ListUsersHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/verify", http.HandlerFunc(admins.VerifyUserHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.DeleteUserHandler)).Methods(http.MethodDelete)

	// Cause registry
	adminRouter.Handle("/causes", http.HandlerFunc(admins.CreateCauseHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/causes/{id:[0-9]+}", http.HandlerFunc(admins.UpdateCauseHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/causes/{id:[0-9]+}", http.HandlerFunc(admins.DeleteCauseHandler)).Methods(http.MethodDelete)

	// Settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettingsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettingsHandler)).Methods(http.MethodPut)

	// Reconciliation backstop
	adminRouter.Handle("/reconcile/campaigns/{id:[0-9]+}", http.HandlerFunc(admins.ReconcileCampaignHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/reconcile", http.HandlerFunc(admins.ReconcileAllHandler)).Methods(http.MethodPost)
}
