package services

import (
	"testing"

	"PharmaDesk/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatientWithWallet(balance string) *models.Patient {
	return &models.Patient{
		ID:       1,
		Name:     "Jordan Reyes",
		Username: "jordanr",
		Wallet:   models.Wallet{Balance: decimal.RequireFromString(balance)},
	}
}

func TestDepositThenPay(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("0.00")

	require.NoError(t, svc.Deposit(p, decimal.RequireFromString("500.00"), "opening deposit"))
	assert.True(t, p.Wallet.Balance.Equal(decimal.RequireFromString("500.00")))

	require.NoError(t, svc.Pay(p, decimal.RequireFromString("31.50"), 1, ""))
	assert.True(t, p.Wallet.Balance.Equal(decimal.RequireFromString("468.50")))

	require.Len(t, p.Wallet.Transactions, 2)
	assert.Equal(t, models.TransactionDeposit, p.Wallet.Transactions[0].Type)
	assert.Equal(t, models.TransactionPayment, p.Wallet.Transactions[1].Type)
	assert.Contains(t, p.Wallet.Transactions[1].Description, "order #1")
}

func TestWithdrawBeyondBalanceFails(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("50.00")

	err := svc.Withdraw(p, decimal.RequireFromString("100.00"), "rent")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Nothing changed: balance intact, no transaction appended.
	assert.True(t, p.Wallet.Balance.Equal(decimal.RequireFromString("50.00")))
	assert.Empty(t, p.Wallet.Transactions)
}

func TestPayBeyondBalanceFails(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("10.00")

	err := svc.Pay(p, decimal.RequireFromString("31.50"), 7, "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, p.Wallet.Balance.Equal(decimal.RequireFromString("10.00")))
	assert.Empty(t, p.Wallet.Transactions)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("100.00")

	assert.ErrorIs(t, svc.Deposit(p, decimal.Zero, "x"), ErrNonPositiveAmount)
	assert.ErrorIs(t, svc.Withdraw(p, decimal.RequireFromString("-5.00"), "x"), ErrNonPositiveAmount)
	assert.ErrorIs(t, svc.Pay(p, decimal.Zero, 1, "x"), ErrNonPositiveAmount)
	assert.Empty(t, p.Wallet.Transactions)
}

func TestLedgerReplayMatchesBalance(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("0.00")

	amounts := []string{"120.00", "35.25", "9.99"}
	for _, a := range amounts {
		require.NoError(t, svc.Deposit(p, decimal.RequireFromString(a), "deposit"))
	}
	require.NoError(t, svc.Withdraw(p, decimal.RequireFromString("40.00"), "cash out"))
	require.NoError(t, svc.Pay(p, decimal.RequireFromString("15.75"), 3, "meds"))

	// Replaying the history from empty reproduces the balance exactly.
	assert.True(t, p.Wallet.Replay().Equal(p.Wallet.Balance))
	assert.NoError(t, svc.Verify(p))
}

func TestTransactionIDsMonotonic(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("0.00")

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Deposit(p, decimal.RequireFromString("1.00"), "d"))
	}
	for i, tx := range p.Wallet.Transactions {
		assert.Equal(t, i+1, tx.ID)
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	svc := NewWalletService(zerolog.Nop())
	p := newPatientWithWallet("0.00")
	require.NoError(t, svc.Deposit(p, decimal.RequireFromString("20.00"), "d"))

	p.Wallet.Balance = decimal.RequireFromString("99.00")
	err := svc.Verify(p)
	var mismatch *models.LedgerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.True(t, mismatch.Replayed.Equal(decimal.RequireFromString("20.00")))
}
