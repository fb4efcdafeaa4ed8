// internal/repository/click_repo.go
package repository

import (
	"context"

	"bannerearn-wallet/internal/domain"
)

// ClickRepository defines the interface for click event data operations.
// Click events are append-only.
type ClickRepository interface {
	// CreateClick adds a new click event record using the provided DBExecutor.
	CreateClick(ctx context.Context, q DBExecutor, click *domain.ClickEvent) error
	// ListClicksByAccount retrieves click history for an account, newest first, with the total count.
	ListClicksByAccount(ctx context.Context, q DBExecutor, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error)
	// CountClicks returns the number of recorded clicks across all accounts.
	CountClicks(ctx context.Context, q DBExecutor) (int64, error)
}
