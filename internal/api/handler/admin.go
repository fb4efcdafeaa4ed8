// internal/api/handler/admin.go
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bannerearn-wallet/internal/api/types"
	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/service"
)

const defaultAdminPageSize = 50

// AdminHandler handles the administrator review endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// ReviewWithdrawalResponse is a withdrawal listed for review, with the
// requester's name and email and the full payout destination.
type ReviewWithdrawalResponse struct {
	*domain.RequestedWithdrawal
	BankDetails *domain.BankDetails `json:"bankDetails,omitempty"`
}

func newReviewWithdrawalResponses(withdrawals []domain.RequestedWithdrawal) []*ReviewWithdrawalResponse {
	out := make([]*ReviewWithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		out[i] = &ReviewWithdrawalResponse{
			RequestedWithdrawal: &withdrawals[i],
			BankDetails:         withdrawals[i].Withdrawal.BankDetails(),
		}
	}
	return out
}

// ListWithdrawals lists withdrawal requests, newest first, optionally filtered by status.
// GET /admin/withdrawals?status=Pending
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, defaultAdminPageSize)
	filter := repository.WithdrawalFilter{Limit: limit, Offset: offset}
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		status := domain.WithdrawalStatus(s)
		filter.Status = &status
	}

	withdrawals, total, err := h.service.ListWithdrawals(r.Context(), filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.NewPaginatedResponse(newReviewWithdrawalResponses(withdrawals), limit, offset, total))
}

// UpdateWithdrawalRequest represents the administrator decision body.
type UpdateWithdrawalRequest struct {
	Status        domain.WithdrawalStatus `json:"status"`
	TransactionID string                  `json:"transactionId"`
	AdminNotes    string                  `json:"adminNotes"`
}

// UpdateWithdrawal moves a pending withdrawal to a terminal status.
// PUT /admin/withdrawals/{withdrawalID}
func (h *AdminHandler) UpdateWithdrawal(w http.ResponseWriter, r *http.Request) {
	withdrawalID, err := parseID(chi.URLParam(r, "withdrawalID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var req UpdateWithdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	withdrawal, err := h.service.UpdateWithdrawal(r.Context(), withdrawalID, service.WithdrawalUpdate{
		Status:        req.Status,
		TransactionID: req.TransactionID,
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, newWithdrawalResponse(withdrawal))
}

// Stats returns the dashboard counters.
// GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, stats)
}

// ListUsers lists accounts, newest first.
// GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, defaultAdminPageSize)
	accounts, total, err := h.service.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.NewPaginatedResponse(accounts, limit, offset, total))
}
