// internal/repository/withdrawal_repo.go
package repository

import (
	"context"

	"bannerearn-wallet/internal/domain"

	"github.com/shopspring/decimal"
)

// WithdrawalFilter narrows withdrawal listings. Zero values mean "any".
type WithdrawalFilter struct {
	AccountID *int64
	Status    *domain.WithdrawalStatus
	Limit     int
	Offset    int
}

// WithdrawalStats aggregates withdrawal counters for the admin dashboard.
type WithdrawalStats struct {
	Total         int64           `db:"total"`
	Pending       int64           `db:"pending"`
	AmountSettled decimal.Decimal `db:"amount_settled"`
}

// WithdrawalRepository defines the interface for withdrawal data operations.
// Withdrawals are never deleted.
type WithdrawalRepository interface {
	// CreateWithdrawal adds a new withdrawal request.
	CreateWithdrawal(ctx context.Context, q DBExecutor, withdrawal *domain.Withdrawal) error
	// GetWithdrawalByID retrieves a withdrawal by its ID.
	GetWithdrawalByID(ctx context.Context, q DBExecutor, id int64) (*domain.Withdrawal, error)
	// GetWithdrawalForUpdate retrieves a withdrawal and locks its row until the surrounding transaction ends.
	GetWithdrawalForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Withdrawal, error)
	// UpdateWithdrawalStatus writes status, transaction id, admin notes and processed time.
	UpdateWithdrawalStatus(ctx context.Context, q DBExecutor, withdrawal *domain.Withdrawal) error
	// ListWithdrawals returns withdrawals matching filter, newest first, with the total count.
	ListWithdrawals(ctx context.Context, q DBExecutor, filter WithdrawalFilter) ([]domain.Withdrawal, int64, error)
	// ListWithdrawalsForReview is ListWithdrawals joined with the requesting account's name and email.
	ListWithdrawalsForReview(ctx context.Context, q DBExecutor, filter WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error)
	// GetWithdrawalStats returns the total, pending and settled (Completed) aggregates.
	GetWithdrawalStats(ctx context.Context, q DBExecutor) (*WithdrawalStats, error)
}
