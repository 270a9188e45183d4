package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const pharmacistsFile = "pharmacists"

// PharmacistRepository persists the pharmacist roster. The pharmacy
// affiliation is stored by id only; a dangling pharmacy id still loads.
type PharmacistRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewPharmacistRepository(store *database.Store, log zerolog.Logger) *PharmacistRepository {
	return &PharmacistRepository{store: store, log: log}
}

func (r *PharmacistRepository) LoadAll() ([]*models.Pharmacist, error) {
	lines, err := r.store.ReadLines(pharmacistsFile)
	if err != nil {
		return nil, err
	}
	pharmacists := make([]*models.Pharmacist, 0, len(lines))
	for i, line := range lines {
		p, err := parsePharmacist(line)
		if err != nil {
			r.log.Warn().Err(err).Str("file", pharmacistsFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		pharmacists = append(pharmacists, p)
	}
	return pharmacists, nil
}

func (r *PharmacistRepository) SaveAll(pharmacists []*models.Pharmacist) error {
	lines := make([]string, len(pharmacists))
	for i, p := range pharmacists {
		lines[i] = formatPharmacist(p)
	}
	return r.store.WriteLines(pharmacistsFile, lines)
}

func parsePharmacist(line string) (*models.Pharmacist, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 9 {
		return nil, &codec.ParseError{Entity: "pharmacist", Field: "line", Value: line, Reason: "expected 9 fields"}
	}
	id, err := codec.ParseInt("pharmacist", "id", fields[0])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := codec.ParseInt("pharmacist", "pharmacyId", fields[8])
	if err != nil {
		return nil, err
	}
	return &models.Pharmacist{
		ID:            id,
		Name:          fields[1],
		Username:      fields[2],
		PasswordHash:  fields[3],
		Email:         fields[4],
		Phone:         fields[5],
		LicenseNumber: fields[6],
		Qualification: fields[7],
		PharmacyID:    pharmacyID,
	}, nil
}

func formatPharmacist(p *models.Pharmacist) string {
	return codec.JoinFields(
		strconv.Itoa(p.ID),
		p.Name,
		p.Username,
		p.PasswordHash,
		p.Email,
		p.Phone,
		p.LicenseNumber,
		p.Qualification,
		strconv.Itoa(p.PharmacyID),
	)
}
