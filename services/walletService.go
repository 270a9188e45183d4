package services

import (
	"PharmaDesk/models"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletService mediates every balance-changing action on a patient's
// wallet. The transaction history is append-only; the balance is always the
// replay of that history.
type WalletService struct {
	log zerolog.Logger
}

func NewWalletService(log zerolog.Logger) *WalletService {
	return &WalletService{log: log}
}

// Deposit adds funds. The amount must be positive.
func (s *WalletService) Deposit(patient *models.Patient, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	s.append(patient, models.TransactionDeposit, amount, description)
	patient.Wallet.Balance = patient.Wallet.Balance.Add(amount)
	return nil
}

// Withdraw removes funds. Fails without appending anything when the amount
// exceeds the balance.
func (s *WalletService) Withdraw(patient *models.Patient, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(patient.Wallet.Balance) {
		return ErrInsufficientFunds
	}
	s.append(patient, models.TransactionWithdrawal, amount, description)
	patient.Wallet.Balance = patient.Wallet.Balance.Sub(amount)
	return nil
}

// Pay settles an order from the wallet. Same preconditions as Withdraw; the
// appended transaction is tagged with the order it settles.
func (s *WalletService) Pay(patient *models.Patient, amount decimal.Decimal, orderID int, description string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(patient.Wallet.Balance) {
		return ErrInsufficientFunds
	}
	tagged := fmt.Sprintf("order #%d", orderID)
	if description != "" {
		tagged = fmt.Sprintf("order #%d: %s", orderID, description)
	}
	s.append(patient, models.TransactionPayment, amount, tagged)
	patient.Wallet.Balance = patient.Wallet.Balance.Sub(amount)
	return nil
}

// Verify replays the wallet's history and reports any divergence from the
// stored balance as a *models.LedgerMismatchError.
func (s *WalletService) Verify(patient *models.Patient) error {
	return patient.VerifyLedger()
}

func (s *WalletService) append(patient *models.Patient, txType models.TransactionType, amount decimal.Decimal, description string) {
	tx := models.Transaction{
		ID:          nextTransactionID(patient.Wallet.Transactions),
		Amount:      amount,
		Type:        txType,
		Description: description,
		Timestamp:   time.Now().Truncate(time.Second),
	}
	patient.Wallet.Transactions = append(patient.Wallet.Transactions, tx)
	s.log.Debug().Int("patient_id", patient.ID).Int("tx_id", tx.ID).
		Str("type", string(txType)).Str("amount", amount.StringFixed(2)).
		Msg("Wallet transaction appended")
}

// nextTransactionID assigns ids monotonically within one wallet. Ids are
// immutable once assigned.
func nextTransactionID(txs []models.Transaction) int {
	next := 1
	for _, tx := range txs {
		if tx.ID >= next {
			next = tx.ID + 1
		}
	}
	return next
}
