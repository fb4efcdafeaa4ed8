// internal/domain/withdrawal.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutMethod defines how a withdrawal is paid out.
type PayoutMethod string

const (
	PayoutMethodUPI  PayoutMethod = "UPI"
	PayoutMethodBank PayoutMethod = "Bank"
)

// IsValid reports whether m is a supported payout method.
func (m PayoutMethod) IsValid() bool {
	return m == PayoutMethodUPI || m == PayoutMethodBank
}

// WithdrawalStatus defines the status of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "Pending"
	WithdrawalStatusApproved  WithdrawalStatus = "Approved"
	WithdrawalStatusRejected  WithdrawalStatus = "Rejected"
	WithdrawalStatusCompleted WithdrawalStatus = "Completed"
)

// withdrawalTransitions lists the allowed next states for each status.
// States without an entry are terminal.
var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusPending: {
		WithdrawalStatusApproved,
		WithdrawalStatusRejected,
		WithdrawalStatusCompleted,
	},
}

// IsValid reports whether s is a known status.
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusRejected, WithdrawalStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is allowed out of s.
func (s WithdrawalStatus) IsTerminal() bool {
	return len(withdrawalTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Withdrawal represents a payout request. Records are never deleted.
type Withdrawal struct {
	ID                int64            `db:"id" json:"id"`
	AccountID         int64            `db:"account_id" json:"accountId"`
	Amount            decimal.Decimal  `db:"amount" json:"amount"`
	Method            PayoutMethod     `db:"method" json:"method"`
	UPIID             *string          `db:"upi_id" json:"upiId,omitempty"`
	BankAccountHolder *string          `db:"bank_account_holder" json:"-"`
	BankAccountNumber *string          `db:"bank_account_number" json:"-"`
	BankIFSCCode      *string          `db:"bank_ifsc_code" json:"-"`
	Status            WithdrawalStatus `db:"status" json:"status"`
	TransactionID     *string          `db:"transaction_id" json:"transactionId,omitempty"`
	AdminNotes        *string          `db:"admin_notes" json:"adminNotes,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
	ProcessedAt       *time.Time       `db:"processed_at" json:"processedAt,omitempty"`
}

// NewWithdrawal creates a Pending withdrawal request for the given destination.
// Exactly one of upiID or bank is expected to be set, matching method.
func NewWithdrawal(accountID int64, amount decimal.Decimal, method PayoutMethod, upiID string, bank *BankDetails, now time.Time) *Withdrawal {
	w := &Withdrawal{
		AccountID: accountID,
		Amount:    amount,
		Method:    method,
		Status:    WithdrawalStatusPending,
		CreatedAt: now,
	}
	if method == PayoutMethodUPI {
		w.UPIID = &upiID
	}
	if method == PayoutMethodBank && bank != nil {
		w.BankAccountHolder = &bank.AccountHolder
		w.BankAccountNumber = &bank.AccountNumber
		w.BankIFSCCode = &bank.IFSCCode
	}
	return w
}

// BankDetails returns the bank destination of the request, or nil for UPI payouts.
func (w *Withdrawal) BankDetails() *BankDetails {
	if w.BankAccountNumber == nil {
		return nil
	}
	return &BankDetails{
		AccountHolder: deref(w.BankAccountHolder),
		AccountNumber: deref(w.BankAccountNumber),
		IFSCCode:      deref(w.BankIFSCCode),
	}
}

// RequestedWithdrawal is a Withdrawal together with the account that asked for
// it, as listed for administrator review.
type RequestedWithdrawal struct {
	Withdrawal
	AccountName  string `db:"account_name" json:"accountName"`
	AccountEmail string `db:"account_email" json:"accountEmail"`
}
