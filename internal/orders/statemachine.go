package orders

import (
	"fmt"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
)

// Event names a cause that may move an order between statuses.
type Event string

const (
	EventProofSubmitted Event = "proof_submitted"
	EventGatewaySuccess Event = "gateway_success"
	EventProofApproved  Event = "proof_approved"
	EventProofRejected  Event = "proof_rejected"
	EventShip           Event = "ship"
	EventConfirm        Event = "confirm"
	EventCancel         Event = "cancel"
)

// transitions is the authoritative table. A (status, event) pair absent here
// is invalid; callers consult it before any side effect so a rejected
// transition leaves nothing half-written.
var transitions = map[enums.OrderStatus]map[Event]enums.OrderStatus{
	enums.OrderStatusWaitingPayment: {
		EventProofSubmitted: enums.OrderStatusWaitingPaymentConfirmation,
		EventGatewaySuccess: enums.OrderStatusProcessing,
		EventCancel:         enums.OrderStatusCancelled,
	},
	enums.OrderStatusWaitingPaymentConfirmation: {
		EventProofApproved: enums.OrderStatusProcessing,
		EventProofRejected: enums.OrderStatusWaitingPayment,
		EventCancel:        enums.OrderStatusCancelled,
	},
	enums.OrderStatusProcessing: {
		EventShip:   enums.OrderStatusShipped,
		EventCancel: enums.OrderStatusCancelled,
	},
	enums.OrderStatusShipped: {
		EventConfirm: enums.OrderStatusConfirmed,
	},
}

// NextStatus resolves the transition for (current, event) or fails with an
// invalid-transition error.
func NextStatus(current enums.OrderStatus, event Event) (enums.OrderStatus, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeInvalidTransition,
		fmt.Sprintf("%s not allowed while order is %s", event, current))
}

// CanTransition reports whether the pair is present without building an error.
func CanTransition(current enums.OrderStatus, event Event) bool {
	_, ok := transitions[current][event]
	return ok
}
