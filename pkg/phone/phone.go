package phone

import (
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/nyaruka/phonenumbers"
)

// Normalize parses a raw phone number and returns it in E.164 format.
// defaultRegion is the ISO 3166-1 alpha-2 country used when the number has no
// country prefix.
func Normalize(raw, defaultRegion string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if defaultRegion == "" {
		defaultRegion = "US"
	}

	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", domain.NewValidationError("invalid phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", domain.NewValidationError("invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
