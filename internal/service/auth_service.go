// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bannerearn-wallet/internal/auth"
	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/ledger"
	"bannerearn-wallet/internal/util"
)

const minPasswordLength = 6

// AuthService defines account registration, login and the admin bootstrap.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Account, string, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	GetProfile(ctx context.Context, accountID int64) (*domain.Account, error)
	EnsureAdmin(ctx context.Context, email, password string) (created bool, err error)
}

type authService struct {
	deps   Dependencies
	tokens *auth.TokenIssuer
	ledger *ledger.Ledger
}

// NewAuthService creates a new instance of AuthService. The ledger decides
// which reward day a stored click counter belongs to.
func NewAuthService(deps Dependencies, tokens *auth.TokenIssuer, l *ledger.Ledger) AuthService {
	return &authService{deps: deps.withDefaults(), tokens: tokens, ledger: l}
}

// Register creates a regular account and returns it with an access token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.Account, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || len(password) < minPasswordLength {
		return nil, "", util.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("invalid email: %w", util.ErrInvalidInput)
	}

	account, err := s.createAccount(ctx, name, email, password, false)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	s.deps.Logger.Info("Account registered", "account_id", account.ID)
	return account, token, nil
}

// Login verifies the credentials and returns the account with an access token.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, err := s.deps.Accounts.GetAccountByEmail(ctx, s.deps.DBExecutor, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	account.ClicksToday = s.ledger.ClicksToday(account, s.deps.Now())
	return account, token, nil
}

// GetProfile returns the account with ClicksToday counted for the current reward day.
func (s *authService) GetProfile(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.deps.Accounts.GetAccountByID(ctx, s.deps.DBExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	account.ClicksToday = s.ledger.ClicksToday(account, s.deps.Now())
	return account, nil
}

// EnsureAdmin creates the administrator account unless an account with email
// already exists. An existing account is never modified.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	_, err := s.deps.Accounts.GetAccountByEmail(ctx, s.deps.DBExecutor, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return false, fmt.Errorf("ensure admin: failed to check existing account: %w", err)
	}

	account, err := s.createAccount(ctx, "Administrator", email, password, true)
	if errors.Is(err, util.ErrDuplicateEntry) {
		// Another instance created it first.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	s.deps.Logger.Info("Default admin account created", "account_id", account.ID, "email", email)
	return true, nil
}

func (s *authService) createAccount(ctx context.Context, name, email, password string, isAdmin bool) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account := domain.NewAccount(name, email, string(hash), isAdmin)
	if err := s.deps.Accounts.CreateAccount(ctx, s.deps.DBExecutor, account); err != nil {
		return nil, err
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
