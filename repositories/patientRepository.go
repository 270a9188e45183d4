package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const patientsFile = "patients"

// PatientRepository persists patients together with their owned wallets.
// The wallet's transaction history rides in the patient record's nested
// list field; there is no separate wallet file.
type PatientRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewPatientRepository(store *database.Store, log zerolog.Logger) *PatientRepository {
	return &PatientRepository{store: store, log: log}
}

// LoadAll reads every patient. After decoding, each wallet's history is
// replayed; when the stored balance disagrees with the replay, the replayed
// value wins and the mismatch is reported as an integrity error. No
// synthetic adjustment transaction is ever injected.
func (r *PatientRepository) LoadAll() ([]*models.Patient, error) {
	lines, err := r.store.ReadLines(patientsFile)
	if err != nil {
		return nil, err
	}
	patients := make([]*models.Patient, 0, len(lines))
	for i, line := range lines {
		p, err := r.parsePatient(line)
		if err != nil {
			r.log.Warn().Err(err).Str("file", patientsFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		if err := p.VerifyLedger(); err != nil {
			r.log.Error().Err(err).Int("patient_id", p.ID).
				Msg("Wallet ledger mismatch; using replayed balance")
			p.Wallet.Balance = p.Wallet.Replay()
		}
		patients = append(patients, p)
	}
	return patients, nil
}

// SaveAll rewrites the patients file. Records are always written in the
// wallet-inclusive canonical format, so a loaded legacy record is upgraded
// on the next save.
func (r *PatientRepository) SaveAll(patients []*models.Patient) error {
	lines := make([]string, len(patients))
	for i, p := range patients {
		lines[i] = formatPatient(p)
	}
	return r.store.WriteLines(patientsFile, lines)
}

// parsePatient decodes one record. Seven fields is the legacy wallet-less
// format and loads with an empty wallet; eight adds the balance; nine adds
// the transaction history.
func (r *PatientRepository) parsePatient(line string) (*models.Patient, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 7 {
		return nil, &codec.ParseError{Entity: "patient", Field: "line", Value: line, Reason: "expected at least 7 fields"}
	}
	id, err := codec.ParseInt("patient", "id", fields[0])
	if err != nil {
		return nil, err
	}
	p := &models.Patient{
		ID:           id,
		Name:         fields[1],
		Username:     fields[2],
		PasswordHash: fields[3],
		Email:        fields[4],
		Phone:        fields[5],
		Address:      fields[6],
	}
	if len(fields) >= 8 {
		balance, err := codec.ParseMoney("patient", "walletBalance", fields[7])
		if err != nil {
			return nil, err
		}
		p.Wallet.Balance = balance
	}
	if len(fields) >= 9 {
		p.Wallet.Transactions = r.parseTransactions(id, fields[8])
	}
	return p, nil
}

// parseTransactions decodes the nested history list. A malformed item is
// dropped with a diagnostic; the patient record still loads.
func (r *PatientRepository) parseTransactions(patientID int, field string) []models.Transaction {
	items := codec.SplitItems(field)
	txs := make([]models.Transaction, 0, len(items))
	for _, item := range items {
		parts := codec.SplitParts(item)
		if len(parts) < 5 {
			r.log.Warn().Int("patient_id", patientID).Str("item", item).
				Msg("Dropping malformed transaction item")
			continue
		}
		id, err := codec.ParseInt("transaction", "id", parts[0])
		if err != nil {
			r.log.Warn().Int("patient_id", patientID).Err(err).Msg("Dropping malformed transaction item")
			continue
		}
		amount, err := codec.ParseMoney("transaction", "amount", parts[1])
		if err != nil {
			r.log.Warn().Int("patient_id", patientID).Err(err).Msg("Dropping malformed transaction item")
			continue
		}
		txType, err := models.ParseTransactionType(parts[2])
		if err != nil {
			r.log.Warn().Int("patient_id", patientID).Err(err).Msg("Dropping malformed transaction item")
			continue
		}
		ts, err := codec.ParseTime("transaction", "timestamp", parts[4])
		if err != nil {
			r.log.Warn().Int("patient_id", patientID).Err(err).Msg("Dropping malformed transaction item")
			continue
		}
		txs = append(txs, models.Transaction{
			ID:          id,
			Amount:      amount,
			Type:        txType,
			Description: parts[3],
			Timestamp:   ts,
		})
	}
	return txs
}

func formatPatient(p *models.Patient) string {
	items := make([]string, len(p.Wallet.Transactions))
	for i, tx := range p.Wallet.Transactions {
		items[i] = codec.JoinParts(
			strconv.Itoa(tx.ID),
			codec.FormatMoney(tx.Amount),
			string(tx.Type),
			tx.Description,
			codec.FormatTime(tx.Timestamp),
		)
	}
	return codec.JoinFields(
		strconv.Itoa(p.ID),
		p.Name,
		p.Username,
		p.PasswordHash,
		p.Email,
		p.Phone,
		p.Address,
		codec.FormatMoney(p.Wallet.Balance),
		codec.JoinItems(items),
	)
}
