// internal/service/admin_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/ledger"
	"bannerearn-wallet/internal/metrics"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/util"

	"github.com/shopspring/decimal"
)

// AdminService defines the administrator review operations.
type AdminService interface {
	ListWithdrawals(ctx context.Context, filter repository.WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error)
	UpdateWithdrawal(ctx context.Context, id int64, update WithdrawalUpdate) (*domain.Withdrawal, error)
	Statistics(ctx context.Context) (*Statistics, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error)
}

// WithdrawalUpdate is an administrator decision on a withdrawal request.
type WithdrawalUpdate struct {
	Status        domain.WithdrawalStatus
	TransactionID string
	AdminNotes    string
}

// Statistics are the aggregate counters shown on the admin dashboard.
type Statistics struct {
	TotalUsers         int64           `json:"totalUsers"`
	TotalClicks        int64           `json:"totalClicks"`
	TotalWithdrawals   int64           `json:"totalWithdrawals"`
	PendingWithdrawals int64           `json:"pendingWithdrawals"`
	TotalAmountSettled decimal.Decimal `json:"totalAmountSettled"`
}

type adminService struct {
	deps   Dependencies
	ledger *ledger.Ledger
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(deps Dependencies, l *ledger.Ledger) AdminService {
	return &adminService{deps: deps.withDefaults(), ledger: l}
}

// ListWithdrawals returns withdrawals matching filter, newest first, each with
// the name and email of the account that requested it.
func (s *adminService) ListWithdrawals(ctx context.Context, filter repository.WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("unknown status %q: %w", *filter.Status, util.ErrInvalidInput)
	}
	withdrawals, total, err := s.deps.Withdrawals.ListWithdrawalsForReview(ctx, s.deps.DBExecutor, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

// UpdateWithdrawal moves a Pending withdrawal to a terminal status. Rejection
// returns the reserved amount to the account in the same transaction.
func (s *adminService) UpdateWithdrawal(ctx context.Context, id int64, update WithdrawalUpdate) (*domain.Withdrawal, error) {
	if !update.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", update.Status, util.ErrInvalidInput)
	}

	var withdrawal *domain.Withdrawal
	err := s.deps.inTx(ctx, "update withdrawal", func(q repository.DBExecutor) error {
		now := s.deps.Now()
		var err error
		withdrawal, err = s.deps.Withdrawals.GetWithdrawalForUpdate(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to get withdrawal %d: %w", id, err)
		}
		if !withdrawal.Status.CanTransitionTo(update.Status) {
			return fmt.Errorf("withdrawal %d is %s, cannot become %s: %w",
				id, withdrawal.Status, update.Status, util.ErrInvalidTransition)
		}

		withdrawal.Status = update.Status
		withdrawal.ProcessedAt = &now
		if txID := strings.TrimSpace(update.TransactionID); txID != "" {
			withdrawal.TransactionID = &txID
		}
		if notes := strings.TrimSpace(update.AdminNotes); notes != "" {
			withdrawal.AdminNotes = &notes
		}
		if err := s.deps.Withdrawals.UpdateWithdrawalStatus(ctx, q, withdrawal); err != nil {
			return fmt.Errorf("failed to update withdrawal %d: %w", id, err)
		}

		if update.Status != domain.WithdrawalStatusRejected {
			return nil
		}
		account, err := s.deps.Accounts.GetAccountForUpdate(ctx, q, withdrawal.AccountID)
		if err != nil {
			return fmt.Errorf("failed to get account %d: %w", withdrawal.AccountID, err)
		}
		if err := s.ledger.CreditReversal(account, withdrawal.Amount, now); err != nil {
			return err
		}
		if err := s.deps.Accounts.UpdateLedger(ctx, q, account); err != nil {
			return fmt.Errorf("failed to reverse withdrawal debit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalTransitions.WithLabelValues(string(update.Status)).Inc()
	s.deps.Logger.Info("Withdrawal updated", "withdrawal_id", id, "account_id", withdrawal.AccountID,
		"status", withdrawal.Status, "amount", withdrawal.Amount)
	return withdrawal, nil
}

// Statistics reads the aggregate counters. The values come from separate
// queries and are not a single consistent snapshot.
func (s *adminService) Statistics(ctx context.Context) (*Statistics, error) {
	users, err := s.deps.Accounts.CountAccounts(ctx, s.deps.DBExecutor)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	clicks, err := s.deps.Clicks.CountClicks(ctx, s.deps.DBExecutor)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	withdrawals, err := s.deps.Withdrawals.GetWithdrawalStats(ctx, s.deps.DBExecutor)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	return &Statistics{
		TotalUsers:         users,
		TotalClicks:        clicks,
		TotalWithdrawals:   withdrawals.Total,
		PendingWithdrawals: withdrawals.Pending,
		TotalAmountSettled: withdrawals.AmountSettled,
	}, nil
}

// ListAccounts returns accounts newest first. ClicksToday is reported for the
// current reward day, so a counter left over from an earlier day reads as zero.
func (s *adminService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	accounts, total, err := s.deps.Accounts.ListAccounts(ctx, s.deps.DBExecutor, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	now := s.deps.Now()
	for i := range accounts {
		accounts[i].ClicksToday = s.ledger.ClicksToday(&accounts[i], now)
	}
	return accounts, total, nil
}
