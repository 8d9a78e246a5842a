package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

type stubOrders struct {
	order     *orders.OrderDTO
	paidCalls int
	cancels   []orders.CancelInput
}

func (s *stubOrders) Get(context.Context, uuid.UUID, orders.Actor) (*orders.OrderDTO, error) {
	if s.order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.order, nil
}

func (s *stubOrders) MarkPaidByGateway(context.Context, uuid.UUID) (*orders.OrderDTO, error) {
	s.paidCalls++
	s.order.Status = enums.OrderStatusProcessing
	s.order.PaymentStatus = enums.PaymentStatusPaid
	return s.order, nil
}

func (s *stubOrders) Cancel(_ context.Context, input orders.CancelInput) (*orders.OrderDTO, error) {
	s.cancels = append(s.cancels, input)
	s.order.Status = enums.OrderStatusCancelled
	return s.order, nil
}

type memIdem struct {
	values map[string]string
}

func newMemIdem() *memIdem { return &memIdem{values: map[string]string{}} }

func (m *memIdem) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memIdem) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memIdem) IdempotencyKey(scope, id string) string {
	return "fm:idempotency:" + scope + ":" + id
}

func (m *memIdem) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func waitingOrder() *orders.OrderDTO {
	return &orders.OrderDTO{
		ID:            uuid.New(),
		OrderNumber:   "FM-20260830-AB12CD",
		Status:        enums.OrderStatusWaitingPayment,
		PaymentMethod: enums.PaymentMethodGateway,
		PaymentStatus: enums.PaymentStatusUnpaid,
		TotalCents:    105000,
	}
}

func newReconciler(t *testing.T, stub *stubOrders, idem *memIdem) Service {
	t.Helper()
	var store redis.IdempotencyStore
	if idem != nil {
		store = idem
	}
	svc, err := NewService(stub, store, nil)
	require.NoError(t, err)
	return svc
}

func TestSettlementMarksOrderPaid(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	svc := newReconciler(t, stub, newMemIdem())

	result, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-100",
		OrderID:           stub.order.ID,
		TransactionStatus: "settlement",
		GrossAmountCents:  105000,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentSignalSuccess, result.Signal)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, stub.paidCalls)
}

func TestDuplicateTransactionIsIgnored(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	svc := newReconciler(t, stub, newMemIdem())

	event := GatewayEvent{
		TransactionID:     "tx-dup",
		OrderID:           stub.order.ID,
		TransactionStatus: "settlement",
		GrossAmountCents:  105000,
	}
	first, err := svc.HandleGatewayEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := svc.HandleGatewayEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.False(t, second.Applied)
	assert.Equal(t, 1, stub.paidCalls)
}

func TestSettlementOnProgressedOrderIsNoOp(t *testing.T) {
	order := waitingOrder()
	order.Status = enums.OrderStatusProcessing
	stub := &stubOrders{order: order}
	svc := newReconciler(t, stub, newMemIdem())

	result, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-replay",
		OrderID:           order.ID,
		TransactionStatus: "capture",
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Zero(t, stub.paidCalls)
}

func TestFailureCancelsWaitingOrder(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	svc := newReconciler(t, stub, newMemIdem())

	result, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-deny",
		OrderID:           stub.order.ID,
		TransactionStatus: "deny",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentSignalFailure, result.Signal)
	assert.True(t, result.Applied)
	require.Len(t, stub.cancels, 1)
	assert.Equal(t, "payment failed at gateway", stub.cancels[0].Reason)
	assert.Equal(t, enums.UserRoleSuperAdmin, stub.cancels[0].Actor.Role)
}

func TestFailureOnShippedOrderIsIgnored(t *testing.T) {
	order := waitingOrder()
	order.Status = enums.OrderStatusShipped
	stub := &stubOrders{order: order}
	svc := newReconciler(t, stub, newMemIdem())

	result, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-late",
		OrderID:           order.ID,
		TransactionStatus: "expire",
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, stub.cancels)
}

func TestPendingIsLoggedOnly(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	svc := newReconciler(t, stub, newMemIdem())

	result, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-pending",
		OrderID:           stub.order.ID,
		TransactionStatus: "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentSignalPending, result.Signal)
	assert.False(t, result.Applied)
	assert.Zero(t, stub.paidCalls)
}

func TestAmountMismatchRejected(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	idem := newMemIdem()
	svc := newReconciler(t, stub, idem)

	event := GatewayEvent{
		TransactionID:     "tx-short",
		OrderID:           stub.order.ID,
		TransactionStatus: "settlement",
		GrossAmountCents:  1,
	}
	_, err := svc.HandleGatewayEvent(context.Background(), event)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Zero(t, stub.paidCalls)

	// the failed claim is released so a corrected retry is not a duplicate
	event.GrossAmountCents = 105000
	result, err := svc.HandleGatewayEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.Duplicate)
}

func TestUnknownTransactionStatusRejected(t *testing.T) {
	stub := &stubOrders{order: waitingOrder()}
	svc := newReconciler(t, stub, newMemIdem())

	_, err := svc.HandleGatewayEvent(context.Background(), GatewayEvent{
		TransactionID:     "tx-odd",
		OrderID:           stub.order.ID,
		TransactionStatus: "refund",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
