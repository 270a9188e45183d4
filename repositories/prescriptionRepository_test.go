package repositories

import (
	"testing"
	"time"

	"PharmaDesk/codec"
	"PharmaDesk/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrescription() *models.Prescription {
	return &models.Prescription{
		ID:           1,
		PatientID:    1,
		DoctorID:     3,
		IssueDate:    time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		Items:        []models.LineItem{{MedicineID: 2, Quantity: 1}},
		Diagnosis:    "acute otitis media; left ear",
		Notes:        "take with food: morning and evening",
		Status:       models.PrescriptionFilled,
		PharmacistID: 5,
	}
}

func TestPrescriptionRoundTrip(t *testing.T) {
	repo := NewPrescriptionRepository(newTestStore(t), zerolog.Nop())
	p := testPrescription()

	line := formatPrescription(p)
	parsed, err := repo.parsePrescription(line, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, p.ID, parsed.ID)
	assert.Equal(t, p.DoctorID, parsed.DoctorID)
	assert.True(t, p.IssueDate.Equal(parsed.IssueDate))
	assert.Equal(t, p.Items, parsed.Items)
	assert.Equal(t, p.Diagnosis, parsed.Diagnosis)
	assert.Equal(t, p.Notes, parsed.Notes)
	assert.Equal(t, models.PrescriptionFilled, parsed.Status)
	assert.Equal(t, 5, parsed.PharmacistID)

	assert.Equal(t, line, formatPrescription(parsed))
}

func TestPrescriptionLegacyFormatDefaultsToCreated(t *testing.T) {
	repo := NewPrescriptionRepository(newTestStore(t), zerolog.Nop())

	item := codec.JoinParts("2", "1")
	line := codec.JoinFields("4", "1", "3", "2026-08-01", codec.JoinItems([]string{item}), "diagnosis", "notes")
	parsed, err := repo.parsePrescription(line, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionCreated, parsed.Status)
	assert.Zero(t, parsed.PharmacistID)
}

func TestPrescriptionExpiryDerivedFromIssueDate(t *testing.T) {
	p := testPrescription()
	expiry := p.ExpiryDate(30)
	assert.True(t, expiry.Equal(time.Date(2026, 9, 26, 0, 0, 0, 0, time.UTC)))
}

func TestPrescriptionUnresolvedItemDropped(t *testing.T) {
	repo := NewPrescriptionRepository(newTestStore(t), zerolog.Nop())
	p := testPrescription()
	p.Items = []models.LineItem{{MedicineID: 2, Quantity: 1}, {MedicineID: 404, Quantity: 2}}

	parsed, err := repo.parsePrescription(formatPrescription(p), testCatalog())
	require.NoError(t, err)
	assert.Equal(t, []models.LineItem{{MedicineID: 2, Quantity: 1}}, parsed.Items)
}

func TestPrescriptionLoadSkipsMalformedLines(t *testing.T) {
	store := newTestStore(t)
	repo := NewPrescriptionRepository(store, zerolog.Nop())

	lines := []string{
		formatPrescription(testPrescription()),
		"short|line",
	}
	require.NoError(t, store.WriteLines("prescriptions", lines))

	loaded, err := repo.LoadAll(testCatalog())
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
