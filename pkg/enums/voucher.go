package enums

import "fmt"

// VoucherType scopes what a code-based voucher may discount.
type VoucherType string

const (
	VoucherTypeReferral        VoucherType = "referral"
	VoucherTypeShipping        VoucherType = "shipping"
	VoucherTypeProductSpecific VoucherType = "product_specific"
)

var validVoucherTypes = []VoucherType{
	VoucherTypeReferral,
	VoucherTypeShipping,
	VoucherTypeProductSpecific,
}

func (v VoucherType) String() string { return string(v) }

// IsValid reports whether the value is a known VoucherType.
func (v VoucherType) IsValid() bool {
	for _, candidate := range validVoucherTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVoucherType converts raw input into a VoucherType.
func ParseVoucherType(value string) (VoucherType, error) {
	for _, candidate := range validVoucherTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid voucher type %q", value)
}

// VoucherValueType selects how the voucher value is interpreted.
type VoucherValueType string

const (
	VoucherValuePercentage  VoucherValueType = "percentage"
	VoucherValueFixedAmount VoucherValueType = "fixed_amount"
)

func (v VoucherValueType) String() string { return string(v) }

// IsValid reports whether the value is a known VoucherValueType.
func (v VoucherValueType) IsValid() bool {
	return v == VoucherValuePercentage || v == VoucherValueFixedAmount
}
