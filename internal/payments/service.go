package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

const (
	webhookScope  = "payment-webhook"
	dedupeWindow  = 48 * time.Hour
	failureReason = "payment failed at gateway"
)

type orderTransitioner interface {
	Get(ctx context.Context, id uuid.UUID, actor orders.Actor) (*orders.OrderDTO, error)
	MarkPaidByGateway(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error)
	Cancel(ctx context.Context, input orders.CancelInput) (*orders.OrderDTO, error)
}

// Service reconciles asynchronous gateway notifications against order state.
// Notifications arrive at-least-once and out of order; every path here has to
// be safe to replay.
type Service interface {
	HandleGatewayEvent(ctx context.Context, event GatewayEvent) (*Result, error)
}

type service struct {
	orders orderTransitioner
	idem   redis.IdempotencyStore
	logg   *logger.Logger
}

// NewService builds the reconciler. The idempotency store may be nil, in
// which case every event is treated as first delivery.
func NewService(orderSvc orderTransitioner, idem redis.IdempotencyStore, logg *logger.Logger) (Service, error) {
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	return &service{orders: orderSvc, idem: idem, logg: logg}, nil
}

// systemActor lets the reconciler read and cancel any order.
func systemActor() orders.Actor {
	return orders.Actor{Role: enums.UserRoleSuperAdmin}
}

func (s *service) HandleGatewayEvent(ctx context.Context, event GatewayEvent) (result *Result, err error) {
	if strings.TrimSpace(event.TransactionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	if event.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	signal, err := mapTransactionStatus(event.TransactionStatus)
	if err != nil {
		return nil, err
	}

	if s.idem != nil {
		key := s.idem.IdempotencyKey(webhookScope, event.TransactionID)
		fresh, claimErr := s.idem.SetNX(ctx, key, string(signal), dedupeWindow)
		if claimErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, claimErr, "webhook dedupe check")
		}
		if !fresh {
			s.log(ctx, event, "duplicate gateway notification ignored")
			return &Result{Signal: signal, Duplicate: true}, nil
		}
		// release the claim on failure so the gateway's retry can land
		defer func() {
			if err != nil {
				_ = s.idem.Del(ctx, key)
			}
		}()
	}

	return s.apply(ctx, event, signal)
}

func (s *service) apply(ctx context.Context, event GatewayEvent, signal enums.PaymentSignal) (*Result, error) {
	switch signal {
	case enums.PaymentSignalPending:
		s.log(ctx, event, "gateway payment pending")
		return &Result{Signal: signal}, nil

	case enums.PaymentSignalSuccess:
		order, err := s.orders.Get(ctx, event.OrderID, systemActor())
		if err != nil {
			return nil, err
		}
		if order.PaymentMethod != enums.PaymentMethodGateway {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is not a gateway order")
		}
		if event.GrossAmountCents > 0 && event.GrossAmountCents != order.TotalCents {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("settled amount %d does not match order total %d",
					event.GrossAmountCents, order.TotalCents))
		}
		// a settlement replayed after the order moved on is not an error
		if order.Status != enums.OrderStatusWaitingPayment {
			s.log(ctx, event, "settlement on already-progressed order ignored")
			return &Result{Signal: signal}, nil
		}
		if _, err := s.orders.MarkPaidByGateway(ctx, event.OrderID); err != nil {
			return nil, err
		}
		s.log(ctx, event, "gateway settlement applied")
		return &Result{Signal: signal, Applied: true}, nil

	case enums.PaymentSignalFailure:
		order, err := s.orders.Get(ctx, event.OrderID, systemActor())
		if err != nil {
			return nil, err
		}
		if order.Status != enums.OrderStatusWaitingPayment {
			s.log(ctx, event, "failure on already-progressed order ignored")
			return &Result{Signal: signal}, nil
		}
		if _, err := s.orders.Cancel(ctx, orders.CancelInput{
			OrderID: event.OrderID,
			Reason:  failureReason,
			Actor:   systemActor(),
		}); err != nil {
			return nil, err
		}
		s.log(ctx, event, "order cancelled after gateway failure")
		return &Result{Signal: signal, Applied: true}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "unhandled payment signal")
}

// mapTransactionStatus normalizes gateway-specific statuses into the three
// signals the state machine understands.
func mapTransactionStatus(status string) (enums.PaymentSignal, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "settlement", "capture":
		return enums.PaymentSignalSuccess, nil
	case "pending":
		return enums.PaymentSignalPending, nil
	case "deny", "cancel", "expire":
		return enums.PaymentSignalFailure, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("unknown transaction status %q", status))
}

func (s *service) log(ctx context.Context, event GatewayEvent, msg string) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithOrderID(ctx, event.OrderID.String())
	ctx = s.logg.WithField(ctx, "transaction_id", event.TransactionID)
	s.logg.Info(ctx, msg)
}
