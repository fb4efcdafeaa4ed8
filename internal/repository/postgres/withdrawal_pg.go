// internal/repository/postgres/withdrawal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/util"
)

const withdrawalColumns = `id, account_id, amount, method, upi_id, bank_account_holder, bank_account_number,
	bank_ifsc_code, status, transaction_id, admin_notes, created_at, processed_at`

// WithdrawalRepository implements repository.WithdrawalRepository for PostgreSQL.
type WithdrawalRepository struct{}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository() repository.WithdrawalRepository {
	return &WithdrawalRepository{}
}

// CreateWithdrawal inserts a new withdrawal request using the provided DBExecutor.
func (r *WithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (account_id, amount, method, upi_id, bank_account_holder, bank_account_number,
                  bank_ifsc_code, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		w.AccountID,
		w.Amount,
		w.Method,
		w.UPIID,
		w.BankAccountHolder,
		w.BankAccountNumber,
		w.BankIFSCCode,
		w.Status,
		w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", translateError(err))
	}
	return nil
}

// GetWithdrawalByID retrieves a withdrawal by its ID.
func (r *WithdrawalRepository) GetWithdrawalByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	return r.getOne(ctx, q, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
}

// GetWithdrawalForUpdate retrieves a withdrawal and takes a row lock on it.
func (r *WithdrawalRepository) GetWithdrawalForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	return r.getOne(ctx, q, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
}

func (r *WithdrawalRepository) getOne(ctx context.Context, q repository.DBExecutor, query string, id int64) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := q.GetContext(ctx, &w, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal %d: %w", id, translateError(err))
	}
	return &w, nil
}

// UpdateWithdrawalStatus persists an administrator decision. The status
// predicate guards against writing over a request that already left Pending.
func (r *WithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, q repository.DBExecutor, w *domain.Withdrawal) error {
	query := `UPDATE withdrawals
              SET status = $1, transaction_id = $2, admin_notes = $3, processed_at = $4
              WHERE id = $5 AND status = $6`
	result, err := q.ExecContext(ctx, query,
		w.Status,
		w.TransactionID,
		w.AdminNotes,
		w.ProcessedAt,
		w.ID,
		domain.WithdrawalStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal %d: %w", w.ID, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating withdrawal %d: %w", w.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("withdrawal %d is no longer pending: %w", w.ID, util.ErrConcurrentUpdate)
	}
	return nil
}

// ListWithdrawals retrieves a filtered, paginated list of withdrawals, newest first.
func (r *WithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor, filter repository.WithdrawalFilter) ([]domain.Withdrawal, int64, error) {
	where, args := withdrawalFilterClause(filter)

	var totalCount int64
	if err := q.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM withdrawals w`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", translateError(err))
	}

	withdrawals := []domain.Withdrawal{}
	query := fmt.Sprintf(`SELECT %s FROM withdrawals w%s ORDER BY w.created_at DESC, w.id DESC LIMIT $%d OFFSET $%d`,
		qualifiedWithdrawalColumns, where, len(args)+1, len(args)+2)
	if err := q.SelectContext(ctx, &withdrawals, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", translateError(err))
	}

	return withdrawals, totalCount, nil
}

// ListWithdrawalsForReview lists withdrawals like ListWithdrawals, adding the
// name and email of the requesting account.
func (r *WithdrawalRepository) ListWithdrawalsForReview(ctx context.Context, q repository.DBExecutor, filter repository.WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error) {
	where, args := withdrawalFilterClause(filter)

	var totalCount int64
	if err := q.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM withdrawals w`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", translateError(err))
	}

	withdrawals := []domain.RequestedWithdrawal{}
	query := fmt.Sprintf(`SELECT %s, a.name AS account_name, a.email AS account_email
		FROM withdrawals w JOIN accounts a ON a.id = w.account_id%s
		ORDER BY w.created_at DESC, w.id DESC LIMIT $%d OFFSET $%d`,
		qualifiedWithdrawalColumns, where, len(args)+1, len(args)+2)
	if err := q.SelectContext(ctx, &withdrawals, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals for review: %w", translateError(err))
	}

	return withdrawals, totalCount, nil
}

// qualifiedWithdrawalColumns are the withdrawal columns qualified with the "w" alias.
const qualifiedWithdrawalColumns = `w.id, w.account_id, w.amount, w.method, w.upi_id, w.bank_account_holder,
	w.bank_account_number, w.bank_ifsc_code, w.status, w.transaction_id, w.admin_notes, w.created_at, w.processed_at`

// withdrawalFilterClause renders filter as a WHERE clause over the "w" alias.
func withdrawalFilterClause(filter repository.WithdrawalFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conditions = append(conditions, fmt.Sprintf("w.account_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("w.status = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// GetWithdrawalStats aggregates withdrawal counters in a single query.
func (r *WithdrawalRepository) GetWithdrawalStats(ctx context.Context, q repository.DBExecutor) (*repository.WithdrawalStats, error) {
	var stats repository.WithdrawalStats
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = $1) AS pending,
		       COALESCE(SUM(amount) FILTER (WHERE status = $2), 0) AS amount_settled
		FROM withdrawals`
	if err := q.GetContext(ctx, &stats, query, domain.WithdrawalStatusPending, domain.WithdrawalStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to aggregate withdrawal stats: %w", translateError(err))
	}
	return &stats, nil
}
