package models

import (
	"fmt"
	"time"
)

type PrescriptionStatus string

const (
	PrescriptionCreated   PrescriptionStatus = "CREATED"
	PrescriptionSent      PrescriptionStatus = "SENT_TO_PHARMACY"
	PrescriptionFilled    PrescriptionStatus = "FILLED"
	PrescriptionConverted PrescriptionStatus = "CONVERTED_TO_ORDER"
)

func ParsePrescriptionStatus(s string) (PrescriptionStatus, error) {
	switch PrescriptionStatus(s) {
	case PrescriptionCreated, PrescriptionSent, PrescriptionFilled, PrescriptionConverted:
		return PrescriptionStatus(s), nil
	}
	return "", fmt.Errorf("unknown prescription status %q", s)
}

// Prescription is authored by a doctor, filled by a pharmacist and finally
// converted into an order. The expiry date is derived from the issue date
// plus the configured validity window, never stored separately.
type Prescription struct {
	ID           int                `json:"id"`
	PatientID    int                `json:"patient_id"`
	DoctorID     int                `json:"doctor_id"`
	IssueDate    time.Time          `json:"issue_date"`
	Items        []LineItem         `json:"items"`
	Diagnosis    string             `json:"diagnosis"`
	Notes        string             `json:"notes"`
	Status       PrescriptionStatus `json:"status"`
	PharmacistID int                `json:"pharmacist_id"`
}

// ExpiryDate derives the last day the prescription can be converted.
func (p Prescription) ExpiryDate(validityDays int) time.Time {
	return p.IssueDate.AddDate(0, 0, validityDays)
}

// FindPrescription resolves a prescription reference by id, or nil.
func FindPrescription(prescriptions []*Prescription, id int) *Prescription {
	for _, p := range prescriptions {
		if p.ID == id {
			return p
		}
	}
	return nil
}
