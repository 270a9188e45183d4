package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a wallet movement. The sign interpretation is
// fixed per type: deposits add, withdrawals and payments subtract.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionPayment    TransactionType = "PAYMENT"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionDeposit, TransactionWithdrawal, TransactionPayment:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is one immutable entry in a wallet's ledger. Amounts are
// stored unsigned; Type decides the direction.
type Transaction struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Wallet holds a patient's balance and the append-only transaction history
// that backs it. Insertion order is chronological order.
type Wallet struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

// Replay recomputes the balance from an empty wallet by summing the
// transaction history in stored order.
func (w Wallet) Replay() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range w.Transactions {
		switch tx.Type {
		case TransactionDeposit:
			total = total.Add(tx.Amount)
		case TransactionWithdrawal, TransactionPayment:
			total = total.Sub(tx.Amount)
		}
	}
	return total
}

// LedgerMismatchError reports a stored balance that disagrees with the
// replayed transaction history. The replayed value is authoritative; the
// mismatch is an integrity defect to surface, never to patch over with a
// synthetic adjustment transaction.
type LedgerMismatchError struct {
	PatientID int
	Stored    decimal.Decimal
	Replayed  decimal.Decimal
}

func (e *LedgerMismatchError) Error() string {
	return fmt.Sprintf("wallet ledger mismatch for patient %d: stored balance %s, replayed %s",
		e.PatientID, e.Stored.StringFixed(2), e.Replayed.StringFixed(2))
}

// Patient owns its wallet outright: the wallet has exactly one owner and
// does not outlive the patient record.
type Patient struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Wallet       Wallet `json:"wallet"`
}

func (p Patient) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&p.Email, is.Email),
	)
}

// VerifyLedger checks the stored balance against the replayed history.
func (p *Patient) VerifyLedger() error {
	replayed := p.Wallet.Replay()
	if !replayed.Equal(p.Wallet.Balance) {
		return &LedgerMismatchError{PatientID: p.ID, Stored: p.Wallet.Balance, Replayed: replayed}
	}
	return nil
}

// FindPatient resolves a patient reference by id, or nil.
func FindPatient(patients []*Patient, id int) *Patient {
	for _, p := range patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}
