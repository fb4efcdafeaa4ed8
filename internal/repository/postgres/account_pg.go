// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/util"
)

const accountColumns = `id, name, email, password_hash, is_admin, wallet_balance, total_earned, clicks_today,
	last_click_date, upi_id, bank_account_holder, bank_account_number, bank_ifsc_code, version, created_at, updated_at`

// AccountRepository implements repository.AccountRepository for PostgreSQL.
// Methods receive a DBExecutor so they can run inside or outside a transaction.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (name, email, password_hash, is_admin, wallet_balance, total_earned, clicks_today, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.IsAdmin,
		account.WalletBalance,
		account.TotalEarned,
		account.ClicksToday,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", translateError(err))
	}
	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	return r.getOne(ctx, q, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetAccountByEmail retrieves an account by its email.
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Account, error) {
	return r.getOne(ctx, q, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

// GetAccountForUpdate retrieves an account and takes a row lock on it.
// Must be called with a transaction executor.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	return r.getOne(ctx, q, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AccountRepository) getOne(ctx context.Context, q repository.DBExecutor, query string, arg interface{}) (*domain.Account, error) {
	var account domain.Account
	if err := q.GetContext(ctx, &account, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %v: %w", arg, translateError(err))
	}
	return &account, nil
}

// UpdateLedger writes the balance fields guarded by the optimistic version check.
func (r *AccountRepository) UpdateLedger(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `UPDATE accounts
              SET wallet_balance = $1, total_earned = $2, clicks_today = $3, last_click_date = $4,
                  updated_at = $5, version = version + 1
              WHERE id = $6 AND version = $7`
	result, err := q.ExecContext(ctx, query,
		account.WalletBalance,
		account.TotalEarned,
		account.ClicksToday,
		account.LastClickDate,
		account.UpdatedAt,
		account.ID,
		account.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger for account %d: %w", account.ID, translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account %d: %w", account.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %d version %d is stale: %w", account.ID, account.Version, util.ErrConcurrentUpdate)
	}
	account.Version++
	return nil
}

// UpdatePayoutDetails writes the saved payout destinations.
func (r *AccountRepository) UpdatePayoutDetails(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `UPDATE accounts
              SET upi_id = $1, bank_account_holder = $2, bank_account_number = $3, bank_ifsc_code = $4, updated_at = $5
              WHERE id = $6`
	result, err := q.ExecContext(ctx, query,
		account.UPIID,
		account.BankAccountHolder,
		account.BankAccountNumber,
		account.BankIFSCCode,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payout details for account %d: %w", account.ID, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account %d: %w", account.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrAccountNotFound
	}
	return nil
}

// ListAccounts retrieves a paginated list of accounts, newest first.
func (r *AccountRepository) ListAccounts(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.Account, int64, error) {
	accounts := []domain.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	if err := q.SelectContext(ctx, &accounts, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", translateError(err))
	}
	total, err := r.CountAccounts(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// CountAccounts returns the number of accounts.
func (r *AccountRepository) CountAccounts(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var total int64
	if err := q.GetContext(ctx, &total, `SELECT COUNT(*) FROM accounts`); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", translateError(err))
	}
	return total, nil
}
