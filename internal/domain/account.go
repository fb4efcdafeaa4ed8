// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Account represents a user of the reward platform together with its wallet ledger fields.
// WalletBalance, TotalEarned, ClicksToday and LastClickDate are only changed through the ledger package.
type Account struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Email         string          `db:"email" json:"email"`
	PasswordHash  string          `db:"password_hash" json:"-"`
	IsAdmin       bool            `db:"is_admin" json:"isAdmin"`
	WalletBalance decimal.Decimal `db:"wallet_balance" json:"walletBalance"` // NUMERIC(20, 2), never negative
	TotalEarned   decimal.Decimal `db:"total_earned" json:"totalEarned"`     // Lifetime click credits
	ClicksToday   int             `db:"clicks_today" json:"clicksToday"`
	LastClickDate *time.Time      `db:"last_click_date" json:"lastClickDate,omitempty"`

	// Saved payout destinations, reusable across withdrawal requests.
	UPIID             *string `db:"upi_id" json:"upiId,omitempty"`
	BankAccountHolder *string `db:"bank_account_holder" json:"-"`
	BankAccountNumber *string `db:"bank_account_number" json:"-"`
	BankIFSCCode      *string `db:"bank_ifsc_code" json:"-"`

	Version   int64     `db:"version" json:"-"` // Optimistic lock, bumped on every ledger write
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewAccount creates a new Account with an empty wallet.
func NewAccount(name, email, passwordHash string, isAdmin bool) *Account {
	now := time.Now().UTC()
	return &Account{
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		IsAdmin:       isAdmin,
		WalletBalance: decimal.Zero,
		TotalEarned:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BankDetails returns the saved bank destination, or nil when none is on file.
func (a *Account) BankDetails() *BankDetails {
	details := &BankDetails{
		AccountHolder: deref(a.BankAccountHolder),
		AccountNumber: deref(a.BankAccountNumber),
		IFSCCode:      deref(a.BankIFSCCode),
	}
	if !details.IsComplete() {
		return nil
	}
	return details
}

// SetBankDetails stores d as the saved bank destination.
func (a *Account) SetBankDetails(d BankDetails) {
	a.BankAccountHolder = &d.AccountHolder
	a.BankAccountNumber = &d.AccountNumber
	a.BankIFSCCode = &d.IFSCCode
}

// SavedUPIID returns the UPI id on file, or "".
func (a *Account) SavedUPIID() string {
	return deref(a.UPIID)
}

// BankDetails is a bank transfer payout destination.
type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
}

// IsComplete reports whether every field needed for a bank transfer is present.
func (d BankDetails) IsComplete() bool {
	return d.AccountHolder != "" && d.AccountNumber != "" && d.IFSCCode != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
