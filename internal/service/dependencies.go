// internal/service/dependencies.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bannerearn-wallet/internal/metrics"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/util"
	"bannerearn-wallet/pkg/db"
)

// Dependencies bundles the persistence collaborators shared by the services.
type Dependencies struct {
	DBBeginner   db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	DBExecutor   repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	Accounts     repository.AccountRepository
	Clicks       repository.ClickRepository
	Withdrawals  repository.WithdrawalRepository
	BeginTx      db.BeginTxFunc
	CommitTx     db.CommitTxFunc
	RollbackTx   db.RollbackTxFunc
	MaxTxRetries int
	Logger       *slog.Logger
	Now          func() time.Time // Defaults to time.Now().UTC()
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.Logger == nil {
		d.Logger = util.GetLogger()
	}
	if d.MaxTxRetries < 1 {
		d.MaxTxRetries = 1
	}
	return d
}

// inTx runs fn inside a transaction. The whole unit is retried when it fails
// with util.ErrConcurrentUpdate; any other error aborts immediately.
// fn must not keep state between attempts.
func (d Dependencies) inTx(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	var err error
	for attempt := 1; attempt <= d.MaxTxRetries; attempt++ {
		err = d.inTxOnce(ctx, op, fn)
		if err == nil || !errors.Is(err, util.ErrConcurrentUpdate) {
			return err
		}
		if attempt < d.MaxTxRetries {
			metrics.TxRetries.WithLabelValues(op).Inc()
			d.Logger.Warn("Retrying transaction after conflict", "operation", op, "attempt", attempt, "error", err)
		}
	}
	return err
}

func (d Dependencies) inTxOnce(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	txController, err := d.BeginTx(ctx, d.DBBeginner)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, errors.Join(util.ErrPersistence, err))
	}
	defer d.RollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}

	if err := fn(txExecutor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := d.CommitTx(txController); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, errors.Join(util.ErrPersistence, err))
	}
	return nil
}
