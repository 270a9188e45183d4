package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Role identifies which menu surface a logged-in user drives. The core only
// uses it to tag sessions.
type Role string

const (
	RolePatient    Role = "PATIENT"
	RoleDoctor     Role = "DOCTOR"
	RolePharmacist Role = "PHARMACIST"
	RoleAdmin      Role = "ADMIN"
)

// Doctor authors prescriptions.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`
}

func (d Doctor) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required, validation.Min(1)),
		validation.Field(&d.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&d.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&d.Email, is.Email),
	)
}

// Pharmacist fills prescriptions. The pharmacy affiliation is an
// aggregation by id: a pharmacist record stays valid when the referenced
// pharmacy record is absent.
type Pharmacist struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Qualification string `json:"qualification"`
	PharmacyID    int    `json:"pharmacy_id"`
}

func (p Pharmacist) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&p.Email, is.Email),
	)
}

// Pharmacy receives sent prescriptions. The inbox is session state, not
// persisted; it is rebuilt as prescriptions are sent.
type Pharmacy struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Inbox   []int  `json:"-"`
}

func (p Pharmacy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
}

// Admin is a bootstrap operator account sourced from configuration, not
// from a record file.
type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// FindPharmacy resolves a pharmacy reference by id, or nil.
func FindPharmacy(pharmacies []*Pharmacy, id int) *Pharmacy {
	for _, p := range pharmacies {
		if p.ID == id {
			return p
		}
	}
	return nil
}
