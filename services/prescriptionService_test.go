package services

import (
	"testing"

	"PharmaDesk/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrescriptionFixture(t *testing.T) (*PrescriptionService, *OrderService, []*models.Medicine, *models.Doctor, *models.Patient, *models.Pharmacist) {
	t.Helper()
	catalog := testCatalog()
	wallets := NewWalletService(zerolog.Nop())
	orders := NewOrderService(zerolog.Nop(), wallets, catalog, nil)
	svc := NewPrescriptionService(zerolog.Nop(), catalog, nil, 30)
	doctor := &models.Doctor{ID: 3, Name: "Dr. Amina Diallo"}
	patient := &models.Patient{ID: 1, Name: "Jordan Reyes"}
	pharmacist := &models.Pharmacist{ID: 5, Name: "Lee Tran", PharmacyID: 1}
	return svc, orders, catalog, doctor, patient, pharmacist
}

func TestPrescriptionLifecycle(t *testing.T) {
	svc, orders, catalog, doctor, patient, pharmacist := newPrescriptionFixture(t)
	patient.Wallet.Balance = decimal.RequireFromString("100.00")
	pharmacy := &models.Pharmacy{ID: 1, Name: "Central Pharmacy"}

	p, err := svc.Create(doctor, patient, "bacterial infection", "full course", []models.LineItem{{MedicineID: 2, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionCreated, p.Status)
	assert.Equal(t, 80, catalog[1].Quantity) // no stock moves at creation

	require.NoError(t, svc.Send(p, pharmacy))
	assert.Equal(t, models.PrescriptionSent, p.Status)
	assert.Contains(t, pharmacy.Inbox, p.ID)

	require.NoError(t, svc.Fill(p, pharmacist))
	assert.Equal(t, models.PrescriptionFilled, p.Status)
	assert.Equal(t, 5, p.PharmacistID)
	assert.Equal(t, 79, catalog[1].Quantity)

	order, err := svc.ConvertToOrder(p, patient, orders)
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionConverted, p.Status)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("24.00")))
	assert.Equal(t, 79, catalog[1].Quantity) // conversion reserves nothing more

	// Payment failure leaves the order pending and the stock unchanged.
	patient.Wallet.Balance = decimal.RequireFromString("5.00")
	err = orders.PayFromWallet(order, patient)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 79, catalog[1].Quantity)
}

func TestCreateRejectsEmptyAndInvalidItems(t *testing.T) {
	svc, _, _, doctor, patient, _ := newPrescriptionFixture(t)

	_, err := svc.Create(doctor, patient, "d", "n", nil)
	assert.ErrorIs(t, err, ErrEmptyPrescription)

	_, err = svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 404, Quantity: 1}})
	assert.ErrorIs(t, err, ErrMedicineNotFound)
}

func TestFillIsAllOrNothing(t *testing.T) {
	svc, _, catalog, doctor, patient, pharmacist := newPrescriptionFixture(t)
	pharmacy := &models.Pharmacy{ID: 1}

	p, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{
		{MedicineID: 1, Quantity: 10},
		{MedicineID: 2, Quantity: 81}, // only 80 in stock
	})
	require.NoError(t, err)
	require.NoError(t, svc.Send(p, pharmacy))

	err = svc.Fill(p, pharmacist)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The first item must not have been deducted either.
	assert.Equal(t, 150, catalog[0].Quantity)
	assert.Equal(t, 80, catalog[1].Quantity)
	assert.Equal(t, models.PrescriptionSent, p.Status)
}

func TestFillRequiresSentStatus(t *testing.T) {
	svc, _, _, doctor, patient, pharmacist := newPrescriptionFixture(t)

	p, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)

	var transition *InvalidTransitionError
	require.ErrorAs(t, svc.Fill(p, pharmacist), &transition)
	assert.Equal(t, "prescription", transition.Entity)
	assert.Equal(t, string(models.PrescriptionCreated), transition.From)
}

func TestConvertRejectsExpiredPrescription(t *testing.T) {
	svc, orders, _, doctor, patient, pharmacist := newPrescriptionFixture(t)
	pharmacy := &models.Pharmacy{ID: 1}

	p, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, svc.Send(p, pharmacy))
	require.NoError(t, svc.Fill(p, pharmacist))

	p.IssueDate = p.IssueDate.AddDate(0, 0, -40) // past the 30-day window

	_, err = svc.ConvertToOrder(p, patient, orders)
	assert.ErrorIs(t, err, ErrExpiredPrescription)
	assert.Equal(t, models.PrescriptionFilled, p.Status)
}

func TestConvertRequiresFilledStatus(t *testing.T) {
	svc, orders, _, doctor, patient, _ := newPrescriptionFixture(t)

	p, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)

	var transition *InvalidTransitionError
	_, err = svc.ConvertToOrder(p, patient, orders)
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "convert to order", transition.Operation)
}

func TestConvertOnLastValidDay(t *testing.T) {
	svc, orders, _, doctor, patient, pharmacist := newPrescriptionFixture(t)
	pharmacy := &models.Pharmacy{ID: 1}

	p, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, svc.Send(p, pharmacy))
	require.NoError(t, svc.Fill(p, pharmacist))

	// Expiry lands exactly on today: still convertible.
	p.IssueDate = today().AddDate(0, 0, -30)
	_, err = svc.ConvertToOrder(p, patient, orders)
	assert.NoError(t, err)
}

func TestPrescriptionIDsMonotonic(t *testing.T) {
	svc, _, _, doctor, patient, _ := newPrescriptionFixture(t)

	first, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)
	second, err := svc.Create(doctor, patient, "d", "n", []models.LineItem{{MedicineID: 1, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
}
