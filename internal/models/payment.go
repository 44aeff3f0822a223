package models

import "fmt"

// PaymentMethod is the closed set of tender types a POS sale accepts.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCash   PaymentMethod = "cash"
	PaymentPix    PaymentMethod = "pix"
	PaymentFiado  PaymentMethod = "fiado"
)

// ParsePaymentMethod validates a wire string against the closed enumeration.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCredit, PaymentDebit, PaymentCash, PaymentPix, PaymentFiado:
		return PaymentMethod(s), nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown payment method: %q", s))
}

// RequiresCustomer reports whether the method needs a traceable debtor.
func (pm PaymentMethod) RequiresCustomer() bool {
	return pm == PaymentFiado
}
