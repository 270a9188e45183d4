package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const prescriptionsFile = "prescriptions"

// PrescriptionRepository persists prescriptions. Like orders, loading needs
// the medicine catalog for reference resolution. Records written by older
// versions lack the trailing status and pharmacist fields and load as
// CREATED with no fulfiller.
type PrescriptionRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewPrescriptionRepository(store *database.Store, log zerolog.Logger) *PrescriptionRepository {
	return &PrescriptionRepository{store: store, log: log}
}

func (r *PrescriptionRepository) LoadAll(catalog []*models.Medicine) ([]*models.Prescription, error) {
	lines, err := r.store.ReadLines(prescriptionsFile)
	if err != nil {
		return nil, err
	}
	prescriptions := make([]*models.Prescription, 0, len(lines))
	for i, line := range lines {
		p, err := r.parsePrescription(line, catalog)
		if err != nil {
			r.log.Warn().Err(err).Str("file", prescriptionsFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) SaveAll(prescriptions []*models.Prescription) error {
	lines := make([]string, len(prescriptions))
	for i, p := range prescriptions {
		lines[i] = formatPrescription(p)
	}
	return r.store.WriteLines(prescriptionsFile, lines)
}

func (r *PrescriptionRepository) parsePrescription(line string, catalog []*models.Medicine) (*models.Prescription, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 7 {
		return nil, &codec.ParseError{Entity: "prescription", Field: "line", Value: line, Reason: "expected at least 7 fields"}
	}
	id, err := codec.ParseInt("prescription", "id", fields[0])
	if err != nil {
		return nil, err
	}
	patientID, err := codec.ParseInt("prescription", "patientId", fields[1])
	if err != nil {
		return nil, err
	}
	doctorID, err := codec.ParseInt("prescription", "doctorId", fields[2])
	if err != nil {
		return nil, err
	}
	issueDate, err := codec.ParseDate("prescription", "issueDate", fields[3])
	if err != nil {
		return nil, err
	}
	p := &models.Prescription{
		ID:        id,
		PatientID: patientID,
		DoctorID:  doctorID,
		IssueDate: issueDate,
		Items:     parseLineItems(r.log, "prescription", id, fields[4], catalog),
		Diagnosis: fields[5],
		Notes:     fields[6],
		Status:    models.PrescriptionCreated,
	}
	if len(fields) >= 8 {
		status, err := models.ParsePrescriptionStatus(fields[7])
		if err != nil {
			return nil, &codec.ParseError{Entity: "prescription", Field: "status", Value: fields[7], Reason: err.Error()}
		}
		p.Status = status
	}
	if len(fields) >= 9 {
		pharmacistID, err := codec.ParseInt("prescription", "pharmacistId", fields[8])
		if err != nil {
			return nil, err
		}
		p.PharmacistID = pharmacistID
	}
	return p, nil
}

func formatPrescription(p *models.Prescription) string {
	return codec.JoinFields(
		strconv.Itoa(p.ID),
		strconv.Itoa(p.PatientID),
		strconv.Itoa(p.DoctorID),
		codec.FormatDate(p.IssueDate),
		formatLineItems(p.Items),
		p.Diagnosis,
		p.Notes,
		string(p.Status),
		strconv.Itoa(p.PharmacistID),
	)
}
