package enums

import "fmt"

// PaymentMethod selects how the customer intends to pay.
type PaymentMethod string

const (
	PaymentMethodGateway        PaymentMethod = "gateway"
	PaymentMethodManualTransfer PaymentMethod = "manual_transfer"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodGateway,
	PaymentMethodManualTransfer,
}

func (p PaymentMethod) String() string { return string(p) }

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// PaymentStatus records whether money has been confirmed for an order.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) String() string { return string(p) }

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	return p == PaymentStatusUnpaid || p == PaymentStatusPaid
}

// PaymentSignal is the normalized event the reconciler derives from
// gateway-specific transaction statuses.
type PaymentSignal string

const (
	PaymentSignalSuccess PaymentSignal = "success"
	PaymentSignalPending PaymentSignal = "pending"
	PaymentSignalFailure PaymentSignal = "failure"
)

func (p PaymentSignal) String() string { return string(p) }

// PaymentProofStatus tracks review of a manually uploaded transfer proof.
type PaymentProofStatus string

const (
	PaymentProofStatusPending  PaymentProofStatus = "pending"
	PaymentProofStatusApproved PaymentProofStatus = "approved"
	PaymentProofStatusRejected PaymentProofStatus = "rejected"
)

func (p PaymentProofStatus) String() string { return string(p) }

// IsValid reports whether the value is a known PaymentProofStatus.
func (p PaymentProofStatus) IsValid() bool {
	switch p {
	case PaymentProofStatusPending, PaymentProofStatusApproved, PaymentProofStatusRejected:
		return true
	}
	return false
}
