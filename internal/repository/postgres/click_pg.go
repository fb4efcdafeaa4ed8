// internal/repository/postgres/click_pg.go
package postgres

import (
	"context"
	"fmt"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/repository"
)

// ClickRepository implements repository.ClickRepository for PostgreSQL.
type ClickRepository struct{}

// NewClickRepository creates a new ClickRepository.
func NewClickRepository() repository.ClickRepository {
	return &ClickRepository{}
}

// CreateClick inserts a new click event using the provided DBExecutor.
func (r *ClickRepository) CreateClick(ctx context.Context, q repository.DBExecutor, click *domain.ClickEvent) error {
	query := `INSERT INTO click_events (account_id, banner_id, amount, ip_address, user_agent, "timestamp")
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		click.AccountID,
		click.BannerID,
		click.Amount,
		click.IPAddress,
		click.UserAgent,
		click.Timestamp,
	).Scan(&click.ID)
	if err != nil {
		return fmt.Errorf("failed to create click event: %w", translateError(err))
	}
	return nil
}

// ListClicksByAccount retrieves a paginated list of clicks for an account.
// It performs two queries: one for the data and one for the total count.
func (r *ClickRepository) ListClicksByAccount(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error) {
	clicks := []domain.ClickEvent{}

	query := `
		SELECT id, account_id, banner_id, amount, ip_address, user_agent, "timestamp"
		FROM click_events
		WHERE account_id = $1
		ORDER BY "timestamp" DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &clicks, query, accountID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clicks for account %d: %w", accountID, translateError(err))
	}

	var totalCount int64
	if err := q.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM click_events WHERE account_id = $1`, accountID); err != nil {
		return nil, 0, fmt.Errorf("failed to count clicks for account %d: %w", accountID, translateError(err))
	}

	return clicks, totalCount, nil
}

// CountClicks returns the number of recorded clicks.
func (r *ClickRepository) CountClicks(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var total int64
	if err := q.GetContext(ctx, &total, `SELECT COUNT(*) FROM click_events`); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", translateError(err))
	}
	return total, nil
}
