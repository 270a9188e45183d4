package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Medicine is one catalog entry. Stock moves through order reservation and
// prescription filling; catalog entries are removed from the list but never
// rewritten into historical line items.
type Medicine struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Manufacturer         string          `json:"manufacturer"`
	Price                decimal.Decimal `json:"price"`
	Quantity             int             `json:"quantity"`
	Category             string          `json:"category"`
	RequiresPrescription bool            `json:"requires_prescription"`
}

func (m Medicine) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required, validation.Min(1)),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Quantity, validation.Min(0)),
		validation.Field(&m.Price, validation.By(nonNegativeAmount)),
	)
}

func nonNegativeAmount(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return validation.NewError("validation_negative_amount", "amount must not be negative")
	}
	return nil
}

// FindMedicine resolves a catalog reference by id. Returns nil when the id
// does not resolve; callers decide whether that is a dropped line item or a
// rejected operation.
func FindMedicine(catalog []*Medicine, id int) *Medicine {
	for _, m := range catalog {
		if m.ID == id {
			return m
		}
	}
	return nil
}
