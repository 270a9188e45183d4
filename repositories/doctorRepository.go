package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const doctorsFile = "doctors"

// DoctorRepository persists the doctor roster.
type DoctorRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewDoctorRepository(store *database.Store, log zerolog.Logger) *DoctorRepository {
	return &DoctorRepository{store: store, log: log}
}

func (r *DoctorRepository) LoadAll() ([]*models.Doctor, error) {
	lines, err := r.store.ReadLines(doctorsFile)
	if err != nil {
		return nil, err
	}
	doctors := make([]*models.Doctor, 0, len(lines))
	for i, line := range lines {
		d, err := parseDoctor(line)
		if err != nil {
			r.log.Warn().Err(err).Str("file", doctorsFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		doctors = append(doctors, d)
	}
	return doctors, nil
}

func (r *DoctorRepository) SaveAll(doctors []*models.Doctor) error {
	lines := make([]string, len(doctors))
	for i, d := range doctors {
		lines[i] = formatDoctor(d)
	}
	return r.store.WriteLines(doctorsFile, lines)
}

func parseDoctor(line string) (*models.Doctor, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 8 {
		return nil, &codec.ParseError{Entity: "doctor", Field: "line", Value: line, Reason: "expected 8 fields"}
	}
	id, err := codec.ParseInt("doctor", "id", fields[0])
	if err != nil {
		return nil, err
	}
	return &models.Doctor{
		ID:             id,
		Name:           fields[1],
		Username:       fields[2],
		PasswordHash:   fields[3],
		Email:          fields[4],
		Phone:          fields[5],
		Specialization: fields[6],
		LicenseNumber:  fields[7],
	}, nil
}

func formatDoctor(d *models.Doctor) string {
	return codec.JoinFields(
		strconv.Itoa(d.ID),
		d.Name,
		d.Username,
		d.PasswordHash,
		d.Email,
		d.Phone,
		d.Specialization,
		d.LicenseNumber,
	)
}
