package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const medicinesFile = "medicines"

// MedicineRepository persists the medicine catalog. The catalog is loaded
// before orders and prescriptions so their line-item references can be
// resolved against it.
type MedicineRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewMedicineRepository(store *database.Store, log zerolog.Logger) *MedicineRepository {
	return &MedicineRepository{store: store, log: log}
}

// LoadAll reads the whole catalog. A malformed line is skipped with a
// diagnostic; it never aborts loading the remaining lines.
func (r *MedicineRepository) LoadAll() ([]*models.Medicine, error) {
	lines, err := r.store.ReadLines(medicinesFile)
	if err != nil {
		return nil, err
	}
	medicines := make([]*models.Medicine, 0, len(lines))
	for i, line := range lines {
		m, err := parseMedicine(line)
		if err != nil {
			r.log.Warn().Err(err).Str("file", medicinesFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		medicines = append(medicines, m)
	}
	return medicines, nil
}

// SaveAll rewrites the catalog file from the in-memory collection.
func (r *MedicineRepository) SaveAll(medicines []*models.Medicine) error {
	lines := make([]string, len(medicines))
	for i, m := range medicines {
		lines[i] = formatMedicine(m)
	}
	return r.store.WriteLines(medicinesFile, lines)
}

func parseMedicine(line string) (*models.Medicine, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 8 {
		return nil, &codec.ParseError{Entity: "medicine", Field: "line", Value: line, Reason: "expected 8 fields"}
	}
	id, err := codec.ParseInt("medicine", "id", fields[0])
	if err != nil {
		return nil, err
	}
	price, err := codec.ParseMoney("medicine", "price", fields[4])
	if err != nil {
		return nil, err
	}
	quantity, err := codec.ParseInt("medicine", "quantity", fields[5])
	if err != nil {
		return nil, err
	}
	requiresRx, err := codec.ParseBool("medicine", "requiresPrescription", fields[7])
	if err != nil {
		return nil, err
	}
	return &models.Medicine{
		ID:                   id,
		Name:                 fields[1],
		Description:          fields[2],
		Manufacturer:         fields[3],
		Price:                price,
		Quantity:             quantity,
		Category:             fields[6],
		RequiresPrescription: requiresRx,
	}, nil
}

func formatMedicine(m *models.Medicine) string {
	return codec.JoinFields(
		strconv.Itoa(m.ID),
		m.Name,
		m.Description,
		m.Manufacturer,
		codec.FormatMoney(m.Price),
		strconv.Itoa(m.Quantity),
		m.Category,
		strconv.FormatBool(m.RequiresPrescription),
	)
}
