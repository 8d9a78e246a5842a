package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
)

func TestNextStatusAllowedTransitions(t *testing.T) {
	cases := []struct {
		from  enums.OrderStatus
		event Event
		to    enums.OrderStatus
	}{
		{enums.OrderStatusWaitingPayment, EventProofSubmitted, enums.OrderStatusWaitingPaymentConfirmation},
		{enums.OrderStatusWaitingPayment, EventGatewaySuccess, enums.OrderStatusProcessing},
		{enums.OrderStatusWaitingPayment, EventCancel, enums.OrderStatusCancelled},
		{enums.OrderStatusWaitingPaymentConfirmation, EventProofApproved, enums.OrderStatusProcessing},
		{enums.OrderStatusWaitingPaymentConfirmation, EventProofRejected, enums.OrderStatusWaitingPayment},
		{enums.OrderStatusWaitingPaymentConfirmation, EventCancel, enums.OrderStatusCancelled},
		{enums.OrderStatusProcessing, EventShip, enums.OrderStatusShipped},
		{enums.OrderStatusProcessing, EventCancel, enums.OrderStatusCancelled},
		{enums.OrderStatusShipped, EventConfirm, enums.OrderStatusConfirmed},
	}
	for _, c := range cases {
		next, err := NextStatus(c.from, c.event)
		require.NoError(t, err, "%s + %s", c.from, c.event)
		assert.Equal(t, c.to, next)
		assert.True(t, CanTransition(c.from, c.event))
	}
}

func TestNextStatusRejectsInvalidPairs(t *testing.T) {
	cases := []struct {
		from  enums.OrderStatus
		event Event
	}{
		{enums.OrderStatusWaitingPayment, EventShip},
		{enums.OrderStatusWaitingPayment, EventConfirm},
		{enums.OrderStatusProcessing, EventProofApproved},
		{enums.OrderStatusShipped, EventCancel},
		{enums.OrderStatusConfirmed, EventShip},
		{enums.OrderStatusConfirmed, EventCancel},
		{enums.OrderStatusCancelled, EventConfirm},
		{enums.OrderStatusCancelled, EventGatewaySuccess},
	}
	for _, c := range cases {
		_, err := NextStatus(c.from, c.event)
		require.Error(t, err, "%s + %s", c.from, c.event)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidTransition))
		assert.False(t, CanTransition(c.from, c.event))
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, status := range []enums.OrderStatus{enums.OrderStatusConfirmed, enums.OrderStatusCancelled} {
		assert.Empty(t, transitions[status])
	}
}
