// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/ledger"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Account, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateLedger(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePayoutDetails(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.Account, int64, error) {
	args := m.Called(ctx, q, limit, offset)
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, q repository.DBExecutor) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockClickRepository is a mock implementation of repository.ClickRepository.
type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) CreateClick(ctx context.Context, q repository.DBExecutor, click *domain.ClickEvent) error {
	args := m.Called(ctx, q, click)
	return args.Error(0)
}

func (m *MockClickRepository) ListClicksByAccount(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error) {
	args := m.Called(ctx, q, accountID, limit, offset)
	return args.Get(0).([]domain.ClickEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockClickRepository) CountClicks(ctx context.Context, q repository.DBExecutor) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of repository.WithdrawalRepository.
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, w *domain.Withdrawal) error {
	args := m.Called(ctx, q, w)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetWithdrawalByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetWithdrawalForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, q repository.DBExecutor, w *domain.Withdrawal) error {
	args := m.Called(ctx, q, w)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor, filter repository.WithdrawalFilter) ([]domain.Withdrawal, int64, error) {
	args := m.Called(ctx, q, filter)
	return args.Get(0).([]domain.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) ListWithdrawalsForReview(ctx context.Context, q repository.DBExecutor, filter repository.WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error) {
	args := m.Called(ctx, q, filter)
	return args.Get(0).([]domain.RequestedWithdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) GetWithdrawalStats(ctx context.Context, q repository.DBExecutor) (*repository.WithdrawalStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WithdrawalStats), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implements repository.DBExecutor by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// testEnv wires fresh mocks into Dependencies for one test case.
type testEnv struct {
	accounts    *MockAccountRepository
	clicks      *MockClickRepository
	withdrawals *MockWithdrawalRepository
	beginner    *MockDBBeginner
	executor    *MockDBExecutor
	tx          *MockTxController
	beginCalls  int
	deps        Dependencies
	ledger      *ledger.Ledger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		accounts:    new(MockAccountRepository),
		clicks:      new(MockClickRepository),
		withdrawals: new(MockWithdrawalRepository),
		beginner:    new(MockDBBeginner),
		executor:    new(MockDBExecutor),
		tx:          new(MockTxController),
		ledger:      ledger.New(ledger.DefaultPolicy()),
	}
	env.deps = Dependencies{
		DBBeginner:  env.beginner,
		DBExecutor:  env.executor,
		Accounts:    env.accounts,
		Clicks:      env.clicks,
		Withdrawals: env.withdrawals,
		BeginTx: func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			env.beginCalls++
			return env.tx, nil
		},
		CommitTx:     db.CommitTx,
		RollbackTx:   db.RollbackTx,
		MaxTxRetries: 3,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:          func() time.Time { return testNow },
	}
	return env
}

// expectCommit expects exactly one successful commit. The deferred rollback runs afterwards.
func (e *testEnv) expectCommit() {
	e.tx.On("Commit").Return(nil).Once()
	e.tx.On("Rollback").Return(sql.ErrTxDone).Maybe()
}

// expectRollbackOnly expects the transaction to be rolled back without a commit.
func (e *testEnv) expectRollbackOnly() {
	e.tx.On("Rollback").Return(nil)
}

func (e *testEnv) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t, e.beginner, e.executor, e.tx, e.accounts, e.clicks, e.withdrawals)
}
