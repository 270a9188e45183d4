package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const pharmaciesFile = "pharmacies"

// PharmacyRepository persists pharmacy records. Inboxes of sent
// prescriptions are session state and are not written to disk.
type PharmacyRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewPharmacyRepository(store *database.Store, log zerolog.Logger) *PharmacyRepository {
	return &PharmacyRepository{store: store, log: log}
}

func (r *PharmacyRepository) LoadAll() ([]*models.Pharmacy, error) {
	lines, err := r.store.ReadLines(pharmaciesFile)
	if err != nil {
		return nil, err
	}
	pharmacies := make([]*models.Pharmacy, 0, len(lines))
	for i, line := range lines {
		p, err := parsePharmacy(line)
		if err != nil {
			r.log.Warn().Err(err).Str("file", pharmaciesFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		pharmacies = append(pharmacies, p)
	}
	return pharmacies, nil
}

func (r *PharmacyRepository) SaveAll(pharmacies []*models.Pharmacy) error {
	lines := make([]string, len(pharmacies))
	for i, p := range pharmacies {
		lines[i] = formatPharmacy(p)
	}
	return r.store.WriteLines(pharmaciesFile, lines)
}

func parsePharmacy(line string) (*models.Pharmacy, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 5 {
		return nil, &codec.ParseError{Entity: "pharmacy", Field: "line", Value: line, Reason: "expected 5 fields"}
	}
	id, err := codec.ParseInt("pharmacy", "id", fields[0])
	if err != nil {
		return nil, err
	}
	return &models.Pharmacy{
		ID:      id,
		Name:    fields[1],
		Address: fields[2],
		Phone:   fields[3],
		Email:   fields[4],
	}, nil
}

func formatPharmacy(p *models.Pharmacy) string {
	return codec.JoinFields(
		strconv.Itoa(p.ID),
		p.Name,
		p.Address,
		p.Phone,
		p.Email,
	)
}
