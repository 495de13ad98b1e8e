package util

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\s-]{8,20}$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
	cnpjPattern  = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
)

// ValidateFieldValue checks a non-empty value against its field type. Types
// without a stricter shape (text, textarea, select) accept anything.
func ValidateFieldValue(fieldType, value string) error {
	if value == "" {
		return nil
	}

	switch fieldType {
	case "number", "currency":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return errors.Errorf("%q is not a valid number", value)
		}
	case "date":
		if !validDate(value) {
			return errors.Errorf("%q is not a valid date", value)
		}
	case "email":
		if !emailPattern.MatchString(value) {
			return errors.Errorf("%q is not a valid email address", value)
		}
	case "phone":
		if !phonePattern.MatchString(value) {
			return errors.Errorf("%q is not a valid phone number", value)
		}
	case "cpf":
		if !cpfPattern.MatchString(value) {
			return errors.Errorf("%q is not a valid CPF", value)
		}
	case "cnpj":
		if !cnpjPattern.MatchString(value) {
			return errors.Errorf("%q is not a valid CNPJ", value)
		}
	}

	return nil
}

func validDate(value string) bool {
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}

	return false
}
