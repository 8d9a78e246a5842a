package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusWaitingPayment             OrderStatus = "waiting_payment"
	OrderStatusWaitingPaymentConfirmation OrderStatus = "waiting_payment_confirmation"
	OrderStatusProcessing                 OrderStatus = "processing"
	OrderStatusShipped                    OrderStatus = "shipped"
	OrderStatusConfirmed                  OrderStatus = "confirmed"
	OrderStatusCancelled                  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusWaitingPayment,
	OrderStatusWaitingPaymentConfirmation,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusConfirmed,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusConfirmed || o == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
