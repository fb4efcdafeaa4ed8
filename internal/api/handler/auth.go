// internal/api/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"

	"bannerearn-wallet/internal/api/middleware"
	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/service"
	"bannerearn-wallet/internal/util"
)

// AuthHandler handles registration, login and the caller's profile.
type AuthHandler struct {
	auth    service.AuthService
	wallets service.WalletService
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService, wallets service.WalletService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, wallets: wallets, logger: logger}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the access token and the signed-in account.
type AuthResponse struct {
	Token string           `json:"token"`
	User  *ProfileResponse `json:"user"`
}

// ProfileResponse is an account as shown to its owner, including the saved bank details.
type ProfileResponse struct {
	*domain.Account
	BankAccount *domain.BankDetails `json:"bankAccount,omitempty"`
}

func newProfile(account *domain.Account) *ProfileResponse {
	return &ProfileResponse{Account: account, BankAccount: account.BankDetails()}
}

// Register creates an account.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	account, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, AuthResponse{Token: token, User: newProfile(account)})
}

// Login exchanges credentials for an access token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	account, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, AuthResponse{Token: token, User: newProfile(account)})
}

// GetProfile returns the caller's account.
// GET /auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	account, err := h.auth.GetProfile(r.Context(), accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, newProfile(account))
}

// UpdateProfileRequest carries the payout destinations to save.
type UpdateProfileRequest struct {
	UPIID       string              `json:"upiId"`
	BankAccount *domain.BankDetails `json:"bankAccount"`
}

// UpdateProfile saves payout destinations for later withdrawals.
// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	account, err := h.wallets.UpdatePayoutDetails(r.Context(), accountID, req.UPIID, req.BankAccount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, newProfile(account))
}
