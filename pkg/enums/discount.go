package enums

import "fmt"

// DiscountType selects the rule a store discount applies.
type DiscountType string

const (
	DiscountTypeNoRules      DiscountType = "no_rules"
	DiscountTypeWithMaxPrice DiscountType = "with_max_price"
	DiscountTypeBuyXGetY     DiscountType = "buy_x_get_y"
)

var validDiscountTypes = []DiscountType{
	DiscountTypeNoRules,
	DiscountTypeWithMaxPrice,
	DiscountTypeBuyXGetY,
}

func (d DiscountType) String() string { return string(d) }

// IsValid reports whether the value is a known DiscountType.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType converts raw input into a DiscountType.
func ParseDiscountType(value string) (DiscountType, error) {
	for _, candidate := range validDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}
