package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to WithdrawalStatus
		allowed  bool
	}{
		{WithdrawalStatusPending, WithdrawalStatusApproved, true},
		{WithdrawalStatusPending, WithdrawalStatusRejected, true},
		{WithdrawalStatusPending, WithdrawalStatusCompleted, true},
		{WithdrawalStatusPending, WithdrawalStatusPending, false},
		{WithdrawalStatusApproved, WithdrawalStatusCompleted, false},
		{WithdrawalStatusRejected, WithdrawalStatusPending, false},
		{WithdrawalStatusCompleted, WithdrawalStatusRejected, false},
		{WithdrawalStatus("Unknown"), WithdrawalStatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestWithdrawalStatusTerminal(t *testing.T) {
	assert.False(t, WithdrawalStatusPending.IsTerminal())
	assert.True(t, WithdrawalStatusApproved.IsTerminal())
	assert.True(t, WithdrawalStatusRejected.IsTerminal())
	assert.True(t, WithdrawalStatusCompleted.IsTerminal())
	assert.False(t, WithdrawalStatus("Cancelled").IsValid())
}

func TestAccountBankDetails(t *testing.T) {
	acc := NewAccount("Asha", "asha@example.com", "hash", false)
	assert.Nil(t, acc.BankDetails())

	acc.SetBankDetails(BankDetails{AccountHolder: "Asha", AccountNumber: "0012", IFSCCode: "HDFC0001"})
	details := acc.BankDetails()
	if assert.NotNil(t, details) {
		assert.Equal(t, "0012", details.AccountNumber)
	}

	acc.BankIFSCCode = nil
	assert.Nil(t, acc.BankDetails(), "incomplete bank details are not usable")
}
