package services

import (
	"PharmaDesk/models"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PrescriptionService drives a prescription from doctor authorship through
// pharmacist fulfillment to conversion into an order. A filled prescription
// stays usable until converted or expired.
type PrescriptionService struct {
	log           zerolog.Logger
	catalog       []*models.Medicine
	prescriptions []*models.Prescription
	validityDays  int
}

func NewPrescriptionService(log zerolog.Logger, catalog []*models.Medicine, prescriptions []*models.Prescription, validityDays int) *PrescriptionService {
	return &PrescriptionService{log: log, catalog: catalog, prescriptions: prescriptions, validityDays: validityDays}
}

func (s *PrescriptionService) Prescriptions() []*models.Prescription {
	return s.prescriptions
}

// Create authors a new prescription. At least one line item is required and
// every referenced medicine must resolve against the catalog. The issue
// date is today; the expiry is derived from the validity window.
func (s *PrescriptionService) Create(doctor *models.Doctor, patient *models.Patient, diagnosis, notes string, items []models.LineItem) (*models.Prescription, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPrescription
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if models.FindMedicine(s.catalog, item.MedicineID) == nil {
			return nil, ErrMedicineNotFound
		}
	}
	p := &models.Prescription{
		ID:        s.nextID(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		IssueDate: today(),
		Items:     items,
		Diagnosis: diagnosis,
		Notes:     notes,
		Status:    models.PrescriptionCreated,
	}
	s.prescriptions = append(s.prescriptions, p)
	s.log.Info().Int("prescription_id", p.ID).Int("doctor_id", doctor.ID).Int("patient_id", patient.ID).
		Msg("Prescription created")
	return p, nil
}

// Send registers a CREATED prescription with the pharmacy's inbox.
func (s *PrescriptionService) Send(p *models.Prescription, pharmacy *models.Pharmacy) error {
	if p.Status != models.PrescriptionCreated {
		return &InvalidTransitionError{Entity: "prescription", ID: p.ID, From: string(p.Status), Operation: "send"}
	}
	p.Status = models.PrescriptionSent
	pharmacy.Inbox = append(pharmacy.Inbox, p.ID)
	return nil
}

// Fill commits the inventory deduction for a sent prescription. The fill is
// all-or-nothing: if any single medicine is short, no stock moves at all.
func (s *PrescriptionService) Fill(p *models.Prescription, pharmacist *models.Pharmacist) error {
	if p.Status != models.PrescriptionSent {
		return &InvalidTransitionError{Entity: "prescription", ID: p.ID, From: string(p.Status), Operation: "fill"}
	}
	for _, item := range p.Items {
		medicine := models.FindMedicine(s.catalog, item.MedicineID)
		if medicine == nil {
			return ErrMedicineNotFound
		}
		if medicine.Quantity < item.Quantity {
			return ErrInsufficientStock
		}
	}
	for _, item := range p.Items {
		models.FindMedicine(s.catalog, item.MedicineID).Quantity -= item.Quantity
	}
	p.Status = models.PrescriptionFilled
	p.PharmacistID = pharmacist.ID
	s.log.Info().Int("prescription_id", p.ID).Int("pharmacist_id", pharmacist.ID).Msg("Prescription filled")
	return nil
}

// ConvertToOrder turns a FILLED, unexpired prescription into a PENDING
// order for payment. Stock was already deducted at fill time and is not
// reserved again; the order total uses current catalog prices.
func (s *PrescriptionService) ConvertToOrder(p *models.Prescription, patient *models.Patient, orders *OrderService) (*models.Order, error) {
	if p.Status != models.PrescriptionFilled {
		return nil, &InvalidTransitionError{Entity: "prescription", ID: p.ID, From: string(p.Status), Operation: "convert to order"}
	}
	if p.ExpiryDate(s.validityDays).Before(today()) {
		return nil, ErrExpiredPrescription
	}
	order := orders.Create(patient)
	for _, item := range p.Items {
		medicine := models.FindMedicine(s.catalog, item.MedicineID)
		if medicine == nil {
			s.log.Warn().Int("prescription_id", p.ID).Int("medicine_id", item.MedicineID).
				Msg("Dropping converted line item with unresolved medicine reference")
			continue
		}
		order.Items = append(order.Items, item)
		order.Total = order.Total.Add(medicine.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	p.Status = models.PrescriptionConverted
	s.log.Info().Int("prescription_id", p.ID).Int("order_id", order.ID).Msg("Prescription converted to order")
	return order, nil
}

func (s *PrescriptionService) nextID() int {
	next := 1
	for _, p := range s.prescriptions {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
