// Package ledger holds the wallet balance rules for an Account: click credits
// under a daily quota, withdrawal debits and rejection reversals.
//
// The functions only mutate the in-memory Account. Callers are responsible for
// loading the account under a per-account lock and persisting the result in the
// same transaction as the related click or withdrawal record.
package ledger

import (
	"fmt"
	"time"

	"bannerearn-wallet/internal/domain"
	"bannerearn-wallet/internal/util"

	"github.com/shopspring/decimal"
)

// Defaults used when a Policy field is left zero.
const (
	DefaultDailyClickLimit = 50
)

var (
	DefaultClickReward       = decimal.NewFromInt(1)
	DefaultMinimumWithdrawal = decimal.NewFromInt(100)
)

// Policy holds the tunable ledger limits.
type Policy struct {
	DailyClickLimit   int
	ClickReward       decimal.Decimal
	MinimumWithdrawal decimal.Decimal
	Location          *time.Location // Calendar used for the daily quota reset
}

// DefaultPolicy returns the standard limits: 50 clicks a day, 1 unit per click,
// 100 units minimum withdrawal, UTC calendar.
func DefaultPolicy() Policy {
	return Policy{
		DailyClickLimit:   DefaultDailyClickLimit,
		ClickReward:       DefaultClickReward,
		MinimumWithdrawal: DefaultMinimumWithdrawal,
		Location:          time.UTC,
	}
}

// Ledger applies Policy to accounts.
type Ledger struct {
	policy Policy
}

// New creates a Ledger, filling zero Policy fields with defaults.
func New(policy Policy) *Ledger {
	if policy.DailyClickLimit <= 0 {
		policy.DailyClickLimit = DefaultDailyClickLimit
	}
	if !policy.ClickReward.IsPositive() {
		policy.ClickReward = DefaultClickReward
	}
	if !policy.MinimumWithdrawal.IsPositive() {
		policy.MinimumWithdrawal = DefaultMinimumWithdrawal
	}
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &Ledger{policy: policy}
}

// Policy returns the effective policy.
func (l *Ledger) Policy() Policy {
	return l.policy
}

// QuotaDecision is the outcome of a daily click quota check.
type QuotaDecision struct {
	Allowed       bool
	ResetOccurred bool // The stored counter belongs to an earlier day and counts as 0
}

// CheckDailyQuota decides whether acc may record another click at now.
// It does not mutate acc.
func (l *Ledger) CheckDailyQuota(acc *domain.Account, now time.Time) QuotaDecision {
	reset := acc.LastClickDate != nil && !l.sameDay(*acc.LastClickDate, now)
	return QuotaDecision{
		Allowed:       l.ClicksToday(acc, now) < l.policy.DailyClickLimit,
		ResetOccurred: reset,
	}
}

// ClicksToday returns the click count that applies at now, treating a counter
// from an earlier day as 0.
func (l *Ledger) ClicksToday(acc *domain.Account, now time.Time) int {
	if acc.LastClickDate == nil || !l.sameDay(*acc.LastClickDate, now) {
		return 0
	}
	return acc.ClicksToday
}

// CreditClick credits one click of amount to acc at now. The counter is reset
// first when the last click happened on an earlier day. It fails with
// ErrDailyLimitReached, leaving acc untouched, once the quota is used up.
func (l *Ledger) CreditClick(acc *domain.Account, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}
	if !l.CheckDailyQuota(acc, now).Allowed {
		return util.ErrDailyLimitReached
	}
	acc.ClicksToday = l.ClicksToday(acc, now)

	acc.WalletBalance = acc.WalletBalance.Add(amount)
	acc.TotalEarned = acc.TotalEarned.Add(amount)
	acc.ClicksToday++
	lastClick := now
	acc.LastClickDate = &lastClick
	acc.UpdatedAt = now
	return nil
}

// ValidateWithdrawalAmount checks amount against the minimum withdrawal.
func (l *Ledger) ValidateWithdrawalAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.IsInteger() {
		return util.ErrInvalidAmount
	}
	if amount.LessThan(l.policy.MinimumWithdrawal) {
		return fmt.Errorf("minimum withdrawal is %s: %w", l.policy.MinimumWithdrawal, util.ErrBelowMinimum)
	}
	return nil
}

// DebitForWithdrawal reserves amount from acc's balance. It fails with
// ErrInsufficientBalance, leaving acc untouched, when amount exceeds the balance.
func (l *Ledger) DebitForWithdrawal(acc *domain.Account, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}
	if amount.GreaterThan(acc.WalletBalance) {
		return util.ErrInsufficientBalance
	}
	acc.WalletBalance = acc.WalletBalance.Sub(amount)
	acc.UpdatedAt = now
	return nil
}

// CreditReversal returns amount to acc's balance after a rejected withdrawal.
// TotalEarned is not touched: reversed funds were already earned once.
func (l *Ledger) CreditReversal(acc *domain.Account, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}
	acc.WalletBalance = acc.WalletBalance.Add(amount)
	acc.UpdatedAt = now
	return nil
}

func (l *Ledger) sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(l.policy.Location).Date()
	by, bm, bd := b.In(l.policy.Location).Date()
	return ay == by && am == bm && ad == bd
}
