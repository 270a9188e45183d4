package utils

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

// ErrInvalidCardNumber rejects a card number that fails the format check.
// This is format validation only; no gateway is contacted.
var ErrInvalidCardNumber = errors.New("invalid card number")

var cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)

// ValidateCardNumber accepts 13 to 19 digits, ignoring spaces and dashes.
func ValidateCardNumber(number string) error {
	digits := normalizeCardNumber(number)
	err := validation.Validate(digits,
		validation.Required,
		validation.Match(cardNumberPattern),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidCardNumber, err.Error())
	}
	return nil
}

// MaskCardNumber keeps only the last four digits for logs and receipts.
func MaskCardNumber(number string) string {
	digits := normalizeCardNumber(number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func normalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}
