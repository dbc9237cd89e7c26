package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/anushka2030/Chhaya-Crowdfunding/controllers/auth"
	"github.com/anushka2030/Chhaya-Crowdfunding/controllers/users"
	"github.com/anushka2030/Chhaya-Crowdfunding/middleware"
)

// UsersRoutes registers auth and user-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Session traffic: 120 read, 60 write per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)
	api.Handle("/auth/logout-all", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutAllHandler)))).Methods(http.MethodPost)

	// Profile
	api.Handle("/users/me", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/me", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UpdateProfileHandler)))).Methods(http.MethodPut)
	api.Handle("/users/me/password", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ChangePasswordHandler)))).Methods(http.MethodPost)
	api.Handle("/users/me/avatar", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UploadAvatarHandler)))).Methods(http.MethodPost)

	// Campaign management
	api.Handle("/users/campaigns", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateCampaignHandler)))).Methods(http.MethodPost)
	api.Handle("/users/campaigns", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MyCampaignsHandler)))).Methods(http.MethodGet)
	api.Handle("/users/campaigns/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UpdateCampaignHandler)))).Methods(http.MethodPut)
	api.Handle("/users/campaigns/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.DeleteCampaignHandler)))).Methods(http.MethodDelete)
	api.Handle("/users/campaigns/{id:[0-9]+}/pause", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.PauseCampaignHandler)))).Methods(http.MethodPost)

	// Media
	api.Handle("/users/campaigns/{id:[0-9]+}/images", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UploadCampaignImageHandler)))).Methods(http.MethodPost)
	api.Handle("/users/campaigns/{id:[0-9]+}/documents", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UploadCampaignDocumentHandler)))).Methods(http.MethodPost)

	// Money
	api.Handle("/campaigns/{id:[0-9]+}/donate", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.DonateHandler)))).Methods(http.MethodPost)
	api.Handle("/users/campaigns/{id:[0-9]+}/withdraw", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.RequestWithdrawalHandler)))).Methods(http.MethodPost)
	api.Handle("/users/donations", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MyDonationsHandler)))).Methods(http.MethodGet)
	api.Handle("/users/withdrawals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MyWithdrawalsHandler)))).Methods(http.MethodGet)
	api.Handle("/users/totals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MyTotalRaisedHandler)))).Methods(http.MethodGet)
}
