// internal/repository/account_repo.go
package repository

import (
	"context"

	"bannerearn-wallet/internal/domain"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account. Fails with util.ErrDuplicateEntry when the email is taken.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// GetAccountByEmail retrieves an account by its email.
	GetAccountByEmail(ctx context.Context, q DBExecutor, email string) (*domain.Account, error)
	// GetAccountForUpdate retrieves an account and locks its row until the surrounding transaction ends.
	GetAccountForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// UpdateLedger writes the balance fields of account if its version is unchanged,
	// and bumps account.Version. Fails with util.ErrConcurrentUpdate otherwise.
	UpdateLedger(ctx context.Context, q DBExecutor, account *domain.Account) error
	// UpdatePayoutDetails writes the saved UPI id and bank details of account.
	UpdatePayoutDetails(ctx context.Context, q DBExecutor, account *domain.Account) error
	// ListAccounts returns accounts newest first, with the total count.
	ListAccounts(ctx context.Context, q DBExecutor, limit, offset int) ([]domain.Account, int64, error)
	// CountAccounts returns the number of accounts.
	CountAccounts(ctx context.Context, q DBExecutor) (int64, error)
}
