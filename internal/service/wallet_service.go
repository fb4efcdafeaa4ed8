// internal/service/wallet_service.go
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

// WalletService defines the user-facing wallet operations: click crediting,
// withdrawal requests and read-only projections.
type WalletService interface {
	RecordClick(ctx context.Context, accountID int64, bannerID string, origin domain.ClickOrigin) (*ClickResult, error)
	RequestWithdrawal(ctx context.Context, accountID int64, req WithdrawalRequest) (*domain.Withdrawal, *domain.Account, error)
	GetBalance(ctx context.Context, accountID int64) (*Balance, error)
	GetWithdrawalHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.Withdrawal, int64, error)
	GetClickHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error)
	UpdatePayoutDetails(ctx context.Context, accountID int64, upiID string, bank *domain.BankDetails) (*domain.Account, error)
}

// ClickResult is the wallet state right after an accepted click.
type ClickResult struct {
	Click         *domain.ClickEvent
	WalletBalance decimal.Decimal
	ClicksToday   int
}

// WithdrawalRequest holds the user input for a payout request.
// UPIID and BankDetails are optional when a destination is already on file.
type WithdrawalRequest struct {
	Amount      decimal.Decimal
	Method      domain.PayoutMethod
	UPIID       string
	BankDetails *domain.BankDetails
}

// Balance is the read projection of an account's wallet.
type Balance struct {
	WalletBalance decimal.Decimal `json:"walletBalance"`
	TotalEarned   decimal.Decimal `json:"totalEarned"`
	ClicksToday   int             `json:"clicksToday"`
}

// walletService implements the WalletService interface.
type walletService struct {
	deps   Dependencies
	ledger *ledger.Ledger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(deps Dependencies, l *ledger.Ledger) WalletService {
	return &walletService{deps: deps.withDefaults(), ledger: l}
}

// RecordClick credits one banner click. The click event and the ledger update
// are written in one transaction with the account row locked.
func (s *walletService) RecordClick(ctx context.Context, accountID int64, bannerID string, origin domain.ClickOrigin) (*ClickResult, error) {
	bannerID = strings.TrimSpace(bannerID)
	if bannerID == "" {
		return nil, util.ErrInvalidInput
	}

	var result *ClickResult
	err := s.deps.inTx(ctx, "record click", func(q repository.DBExecutor) error {
		now := s.deps.Now()
		account, err := s.deps.Accounts.GetAccountForUpdate(ctx, q, accountID)
		if err != nil {
			return fmt.Errorf("failed to get account %d: %w", accountID, err)
		}

		reward := s.ledger.Policy().ClickReward
		if err := s.ledger.CreditClick(account, reward, now); err != nil {
			return err
		}

		click := domain.NewClickEvent(accountID, bannerID, reward, origin, now)
		if err := s.deps.Clicks.CreateClick(ctx, q, click); err != nil {
			return fmt.Errorf("failed to create click event: %w", err)
		}
		if err := s.deps.Accounts.UpdateLedger(ctx, q, account); err != nil {
			return fmt.Errorf("failed to update wallet balance: %w", err)
		}

		result = &ClickResult{
			Click:         click,
			WalletBalance: account.WalletBalance,
			ClicksToday:   account.ClicksToday,
		}
		return nil
	})
	if err != nil {
		if util.IsError(err, util.ErrDailyLimitReached) {
			metrics.ClicksRejected.Inc()
		}
		return nil, err
	}

	metrics.ClicksRecorded.Inc()
	s.deps.Logger.Info("Click recorded", "account_id", accountID, "banner_id", bannerID,
		"wallet_balance", result.WalletBalance, "clicks_today", result.ClicksToday)
	return result, nil
}

// RequestWithdrawal debits the wallet and creates a Pending withdrawal request
// in one transaction. Newly supplied payout destinations are saved on the account.
func (s *walletService) RequestWithdrawal(ctx context.Context, accountID int64, req WithdrawalRequest) (*domain.Withdrawal, *domain.Account, error) {
	if !req.Method.IsValid() {
		return nil, nil, util.ErrInvalidPayoutMethod
	}
	if err := s.ledger.ValidateWithdrawalAmount(req.Amount); err != nil {
		return nil, nil, err
	}
	req.UPIID = strings.TrimSpace(req.UPIID)

	var (
		withdrawal *domain.Withdrawal
		account    *domain.Account
	)
	err := s.deps.inTx(ctx, "request withdrawal", func(q repository.DBExecutor) error {
		now := s.deps.Now()
		var err error
		account, err = s.deps.Accounts.GetAccountForUpdate(ctx, q, accountID)
		if err != nil {
			return fmt.Errorf("failed to get account %d: %w", accountID, err)
		}
		if err := s.ledger.DebitForWithdrawal(account, req.Amount, now); err != nil {
			return err
		}
		upiID, bank, saveDestination, err := resolveDestination(account, req)
		if err != nil {
			return err
		}

		if saveDestination {
			if err := s.deps.Accounts.UpdatePayoutDetails(ctx, q, account); err != nil {
				return fmt.Errorf("failed to save payout details: %w", err)
			}
		}
		if err := s.deps.Accounts.UpdateLedger(ctx, q, account); err != nil {
			return fmt.Errorf("failed to update wallet balance: %w", err)
		}

		withdrawal = domain.NewWithdrawal(accountID, req.Amount, req.Method, upiID, bank, now)
		if err := s.deps.Withdrawals.CreateWithdrawal(ctx, q, withdrawal); err != nil {
			return fmt.Errorf("failed to create withdrawal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.WithdrawalsRequested.WithLabelValues(string(req.Method)).Inc()
	s.deps.Logger.Info("Withdrawal requested", "account_id", accountID, "withdrawal_id", withdrawal.ID,
		"amount", req.Amount, "method", req.Method, "wallet_balance", account.WalletBalance)
	return withdrawal, account, nil
}

// resolveDestination picks the payout destination from the request or the
// account's saved details. A destination supplied in the request that differs
// from the saved one is copied onto account, and saveDestination is true.
func resolveDestination(account *domain.Account, req WithdrawalRequest) (upiID string, bank *domain.BankDetails, saveDestination bool, err error) {
	switch req.Method {
	case domain.PayoutMethodUPI:
		if req.UPIID != "" {
			if req.UPIID != account.SavedUPIID() {
				upi := req.UPIID
				account.UPIID = &upi
				saveDestination = true
			}
			return req.UPIID, nil, saveDestination, nil
		}
		if saved := account.SavedUPIID(); saved != "" {
			return saved, nil, false, nil
		}
		return "", nil, false, fmt.Errorf("UPI ID required: %w", util.ErrMissingDestination)

	case domain.PayoutMethodBank:
		if req.BankDetails != nil && req.BankDetails.IsComplete() {
			if saved := account.BankDetails(); saved == nil || *saved != *req.BankDetails {
				account.SetBankDetails(*req.BankDetails)
				saveDestination = true
			}
			return "", req.BankDetails, saveDestination, nil
		}
		if saved := account.BankDetails(); saved != nil {
			return "", saved, false, nil
		}
		return "", nil, false, fmt.Errorf("bank details required: %w", util.ErrMissingDestination)
	}
	return "", nil, false, util.ErrInvalidPayoutMethod
}

// GetBalance returns the wallet projection. ClicksToday reads as 0 once the
// calendar day of the last click has passed.
func (s *walletService) GetBalance(ctx context.Context, accountID int64) (*Balance, error) {
	account, err := s.deps.Accounts.GetAccountByID(ctx, s.deps.DBExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("get balance: failed to get account %d: %w", accountID, err)
	}
	return &Balance{
		WalletBalance: account.WalletBalance,
		TotalEarned:   account.TotalEarned,
		ClicksToday:   s.ledger.ClicksToday(account, s.deps.Now()),
	}, nil
}

// GetWithdrawalHistory retrieves the account's withdrawals, newest first.
func (s *walletService) GetWithdrawalHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.Withdrawal, int64, error) {
	withdrawals, total, err := s.deps.Withdrawals.ListWithdrawals(ctx, s.deps.DBExecutor, repository.WithdrawalFilter{
		AccountID: &accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve withdrawal history: %w", err)
	}
	return withdrawals, total, nil
}

// GetClickHistory retrieves the account's clicks, newest first.
func (s *walletService) GetClickHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error) {
	clicks, total, err := s.deps.Clicks.ListClicksByAccount(ctx, s.deps.DBExecutor, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve click history: %w", err)
	}
	return clicks, total, nil
}

// UpdatePayoutDetails saves the UPI id and/or bank details given. Empty values
// leave the stored destination unchanged.
func (s *walletService) UpdatePayoutDetails(ctx context.Context, accountID int64, upiID string, bank *domain.BankDetails) (*domain.Account, error) {
	upiID = strings.TrimSpace(upiID)
	if bank != nil && !bank.IsComplete() {
		return nil, fmt.Errorf("bank details incomplete: %w", util.ErrInvalidInput)
	}

	var account *domain.Account
	err := s.deps.inTx(ctx, "update payout details", func(q repository.DBExecutor) error {
		var err error
		account, err = s.deps.Accounts.GetAccountForUpdate(ctx, q, accountID)
		if err != nil {
			return fmt.Errorf("failed to get account %d: %w", accountID, err)
		}
		if upiID != "" {
			account.UPIID = &upiID
		}
		if bank != nil {
			account.SetBankDetails(*bank)
		}
		account.UpdatedAt = s.deps.Now()
		return s.deps.Accounts.UpdatePayoutDetails(ctx, q, account)
	})
	if err != nil {
		return nil, err
	}
	account.ClicksToday = s.ledger.ClicksToday(account, s.deps.Now())
	return account, nil
}
