package enums

import "fmt"

// OutboxEventType names the domain events queued through the outbox.
type OutboxEventType string

const (
	EventOrderCreated   OutboxEventType = "order.created"
	EventOrderPaid      OutboxEventType = "order.paid"
	EventOrderShipped   OutboxEventType = "order.shipped"
	EventOrderConfirmed OutboxEventType = "order.confirmed"
	EventOrderCancelled OutboxEventType = "order.cancelled"
	EventOrderExpired   OutboxEventType = "order.expired"
	EventStockAdjusted  OutboxEventType = "inventory.stock_adjusted"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderCreated,
	EventOrderPaid,
	EventOrderShipped,
	EventOrderConfirmed,
	EventOrderCancelled,
	EventOrderExpired,
	EventStockAdjusted,
}

func (o OutboxEventType) String() string { return string(o) }

// IsValid reports whether the value is a known OutboxEventType.
func (o OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder     OutboxAggregateType = "order"
	AggregateInventory OutboxAggregateType = "inventory"
)

func (o OutboxAggregateType) String() string { return string(o) }

// IsValid reports whether the value is a known OutboxAggregateType.
func (o OutboxAggregateType) IsValid() bool {
	return o == AggregateOrder || o == AggregateInventory
}
