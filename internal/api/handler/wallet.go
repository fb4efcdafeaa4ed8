// internal/api/handler/wallet.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"bannerearn-wallet/internal/api/middleware"
	"bannerearn-wallet/internal/api/types"
	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/service"
	"bannerearn-wallet/internal/util"
)

const (
	defaultWithdrawalPageSize = 50
	defaultClickPageSize      = 100
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// ClickRequest represents the request body for a banner click.
type ClickRequest struct {
	BannerID string `json:"bannerId"`
}

// ClickResponse is the wallet state after an accepted click.
type ClickResponse struct {
	Message       string          `json:"message"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	ClicksToday   int             `json:"clicksToday"`
}

// Click credits a banner click to the caller's wallet.
// POST /wallet/click
func (h *WalletHandler) Click(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	var req ClickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	origin := domain.ClickOrigin{IPAddress: clientIP(r), UserAgent: r.UserAgent()}
	result, err := h.service.RecordClick(r.Context(), accountID, req.BannerID, origin)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, ClickResponse{
		Message:       "Click recorded",
		WalletBalance: result.WalletBalance,
		ClicksToday:   result.ClicksToday,
	})
}

// WithdrawRequest represents the request body for withdraw.
type WithdrawRequest struct {
	Amount      decimal.Decimal     `json:"amount"`
	Method      domain.PayoutMethod `json:"method"`
	UPIID       string              `json:"upiId"`
	BankDetails *domain.BankDetails `json:"bankDetails"`
}

// WithdrawalResponse is a withdrawal as returned by the API. The bank
// destination is nested under bankDetails instead of the flat stored columns.
type WithdrawalResponse struct {
	*domain.Withdrawal
	BankDetails *domain.BankDetails `json:"bankDetails,omitempty"`
}

func newWithdrawalResponse(w *domain.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{Withdrawal: w, BankDetails: w.BankDetails()}
}

func newWithdrawalResponses(withdrawals []domain.Withdrawal) []*WithdrawalResponse {
	out := make([]*WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		out[i] = newWithdrawalResponse(&withdrawals[i])
	}
	return out
}

// WithdrawResponse is returned for a created withdrawal request.
type WithdrawResponse struct {
	Message        string              `json:"message"`
	WithdrawalID   int64               `json:"withdrawalId"`
	CurrentBalance decimal.Decimal     `json:"currentBalance"`
	Withdrawal     *WithdrawalResponse `json:"withdrawal"`
}

// Withdraw handles the withdraw money request.
// POST /wallet/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	var req WithdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	withdrawal, account, err := h.service.RequestWithdrawal(r.Context(), accountID, service.WithdrawalRequest{
		Amount:      req.Amount,
		Method:      req.Method,
		UPIID:       req.UPIID,
		BankDetails: req.BankDetails,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, WithdrawResponse{
		Message:        "Withdrawal request submitted",
		WithdrawalID:   withdrawal.ID,
		CurrentBalance: account.WalletBalance,
		Withdrawal:     newWithdrawalResponse(withdrawal),
	})
}

// GetBalance handles the get wallet balance request.
// GET /wallet/balance
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, balance)
}

// GetWithdrawals lists the caller's withdrawal requests, newest first.
// GET /wallet/withdrawals
func (h *WalletHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	limit, offset := parsePagination(r, defaultWithdrawalPageSize)
	withdrawals, total, err := h.service.GetWithdrawalHistory(r.Context(), accountID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.NewPaginatedResponse(newWithdrawalResponses(withdrawals), limit, offset, total))
}

// GetClicks lists the caller's click events, newest first.
// GET /wallet/clicks
func (h *WalletHandler) GetClicks(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	limit, offset := parsePagination(r, defaultClickPageSize)
	clicks, total, err := h.service.GetClickHistory(r.Context(), accountID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.NewPaginatedResponse(clicks, limit, offset, total))
}
