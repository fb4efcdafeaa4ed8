// internal/api/mocks_test.go
package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/service"
)

// MockWalletService is a mock implementation of service.WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) RecordClick(ctx context.Context, accountID int64, bannerID string, origin domain.ClickOrigin) (*service.ClickResult, error) {
	args := m.Called(ctx, accountID, bannerID, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClickResult), args.Error(1)
}

func (m *MockWalletService) RequestWithdrawal(ctx context.Context, accountID int64, req service.WithdrawalRequest) (*domain.Withdrawal, *domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Withdrawal), args.Get(1).(*domain.Account), args.Error(2)
}

func (m *MockWalletService) GetBalance(ctx context.Context, accountID int64) (*service.Balance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Balance), args.Error(1)
}

func (m *MockWalletService) GetWithdrawalHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.Withdrawal, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]domain.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) GetClickHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.ClickEvent, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]domain.ClickEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) UpdatePayoutDetails(ctx context.Context, accountID int64, upiID string, bank *domain.BankDetails) (*domain.Account, error) {
	args := m.Called(ctx, accountID, upiID, bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockAdminService is a mock implementation of service.AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListWithdrawals(ctx context.Context, filter repository.WithdrawalFilter) ([]domain.RequestedWithdrawal, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.RequestedWithdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) UpdateWithdrawal(ctx context.Context, id int64, update service.WithdrawalUpdate) (*domain.Withdrawal, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockAdminService) Statistics(ctx context.Context) (*service.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Statistics), args.Error(1)
}

func (m *MockAdminService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.Account, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetProfile(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}
