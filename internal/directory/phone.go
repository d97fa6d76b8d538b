package directory

import (
	"fmt"

	"github.com/ttacon/libphonenumber"
)

// PhoneValidator checks customer phone numbers against a numbering region.
type PhoneValidator struct {
	Region string
}

// Validate returns ErrInvalidCustomer when phone is not a valid number in the
// configured region. A zero validator accepts everything.
func (v PhoneValidator) Validate(phone string) error {
	if v.Region == "" {
		return nil
	}
	parsed, err := libphonenumber.Parse(phone, v.Region)
	if err != nil {
		return fmt.Errorf("%w: phone %q: %v", ErrInvalidCustomer, phone, err)
	}
	if !libphonenumber.IsValidNumber(parsed) {
		return fmt.Errorf("%w: phone %q is not a valid %s number", ErrInvalidCustomer, phone, v.Region)
	}
	return nil
}
