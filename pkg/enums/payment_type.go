package enums

import "fmt"

// PaymentType labels a ledger row by why the money moved.
type PaymentType string

const (
	PaymentTypeGuaranteed  PaymentType = "guaranteed"
	PaymentTypeSponsorship PaymentType = "sponsorship"
	PaymentTypeBonus       PaymentType = "bonus"
	PaymentTypeRefund      PaymentType = "refund"
)

var validPaymentTypes = []PaymentType{
	PaymentTypeGuaranteed,
	PaymentTypeSponsorship,
	PaymentTypeBonus,
	PaymentTypeRefund,
}

// String implements fmt.Stringer.
func (t PaymentType) String() string {
	return string(t)
}

// IsValid reports whether the value is known.
func (t PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}
