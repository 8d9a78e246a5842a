package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/internal/inventory"
	"github.com/freshmart-id/freshmart-backend/internal/pricing"
	"github.com/freshmart-id/freshmart-backend/internal/stores"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db"
	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/geo"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/outbox"
	"github.com/freshmart-id/freshmart-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type stockMover interface {
	VerifyReserved(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []inventory.Line) error
	Reserve(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []inventory.Line, actor uuid.UUID, note string) error
	Release(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []inventory.Line, actor uuid.UUID, note string) error
}

type storeLocator interface {
	Locate(ctx context.Context, point geo.Point, lines []stores.Line) (*stores.Selection, error)
}

type quoter interface {
	Quote(ctx context.Context, input pricing.QuoteInput) (*pricing.Quote, error)
}

// Service drives the order lifecycle from checkout through the terminal
// statuses. Every transition consults the state machine before touching rows.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID, actor Actor) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]OrderDTO, string, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, status *enums.OrderStatus, actor Actor, params pagination.Params) ([]OrderDTO, string, error)
	SubmitPaymentProof(ctx context.Context, orderID uuid.UUID, actor Actor, imageURL string, notes *string) (*OrderDTO, error)
	VerifyPaymentProof(ctx context.Context, orderID uuid.UUID, actor Actor, approve bool, reviewNotes *string) (*OrderDTO, error)
	MarkPaidByGateway(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	Ship(ctx context.Context, input ShipInput) (*OrderDTO, error)
	ConfirmReceipt(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDTO, error)
	Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	events   outboxEmitter
	stock    stockMover
	locator  storeLocator
	pricer   quoter
	checkout config.CheckoutConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the order orchestrator. The outbox emitter may be nil in
// tests that do not assert on events.
func NewService(
	repo Repository,
	tx txRunner,
	events outboxEmitter,
	stock stockMover,
	locator storeLocator,
	pricer quoter,
	checkout config.CheckoutConfig,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if locator == nil {
		return nil, fmt.Errorf("store locator required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		events:   events,
		stock:    stock,
		locator:  locator,
		pricer:   pricer,
		checkout: checkout,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Checkout locates a fulfilling store, prices the cart, and creates the order
// with its stock reservation in one transaction. A failure at any step rolls
// the whole thing back.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	locatorLines := make([]stores.Line, 0, len(input.Items))
	for _, item := range input.Items {
		locatorLines = append(locatorLines, stores.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	selection, err := s.locator.Locate(ctx, geo.Point{Lat: input.Address.Lat, Lng: input.Address.Lng}, locatorLines)
	if err != nil {
		return nil, err
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		productIDs := make([]uuid.UUID, 0, len(input.Items))
		for _, item := range input.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := repo.FindProducts(ctx, productIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		method, err := repo.FindShippingMethod(ctx, input.ShippingMethodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping method")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipping method")
		}

		quoteLines := make([]pricing.LineInput, 0, len(input.Items))
		for _, item := range input.Items {
			product, ok := byID[item.ProductID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("unknown product %s", item.ProductID))
			}
			quoteLines = append(quoteLines, pricing.LineInput{Product: product, Quantity: item.Quantity})
		}

		quote, err := s.pricer.Quote(ctx, pricing.QuoteInput{
			StoreID:        selection.Store.ID,
			DistanceKM:     selection.DistanceKM,
			ShippingMethod: method,
			Lines:          quoteLines,
			VoucherCodes:   input.VoucherCodes,
		})
		if err != nil {
			return err
		}

		now := s.now()
		expiresAt := now.Add(s.checkout.PaymentWindow)
		order := &models.Order{
			ID:                 uuid.New(),
			OrderNumber:        newOrderNumber(now),
			UserID:             input.UserID,
			StoreID:            selection.Store.ID,
			Status:             enums.OrderStatusWaitingPayment,
			PaymentMethod:      input.PaymentMethod,
			PaymentStatus:      enums.PaymentStatusUnpaid,
			SubtotalCents:      quote.SubtotalCents,
			ShippingCostCents:  quote.ShippingCostCents,
			DiscountTotalCents: quote.DiscountTotalCents,
			TotalCents:         quote.TotalCents,
			AddressLine:        input.Address.Line,
			AddressLat:         input.Address.Lat,
			AddressLng:         input.Address.Lng,
			ShippingMethodID:   method.ID,
			DistanceKM:         selection.DistanceKM,
			ExpiresAt:          &expiresAt,
			Notes:              input.Notes,
		}
		for _, line := range quote.Lines {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:         line.ProductID,
				ProductName:       line.ProductName,
				Quantity:          line.Quantity,
				UnitPriceCents:    line.UnitPriceCents,
				LineDiscountCents: line.LineDiscountCents,
				SubtotalCents:     line.SubtotalCents,
			})
		}
		for _, av := range quote.AppliedVouchers {
			order.AppliedVouchers = append(order.AppliedVouchers, models.AppliedVoucher{
				VoucherID:           av.Voucher.ID,
				VoucherCode:         av.Voucher.Code,
				DiscountAmountCents: av.DiscountAmountCents,
			})
		}
		if err := repo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "orders_order_number_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number collision, retry checkout")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		reserveLines := make([]inventory.Line, 0, len(input.Items))
		for _, item := range input.Items {
			reserveLines = append(reserveLines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		if err := s.stock.Reserve(ctx, tx, order.StoreID, reserveLines, input.UserID,
			fmt.Sprintf("reservation for order %s", order.OrderNumber)); err != nil {
			return err
		}

		if err := s.emitOrderEvent(ctx, tx, enums.EventOrderCreated, order,
			Actor{UserID: input.UserID, Role: enums.UserRoleCustomer}, now); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, created.ID.String())
		s.logg.Info(ctx, "order created")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, actor Actor) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if err := authorizeRead(order, actor); err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]OrderDTO, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.repo.ListByUser(ctx, userID, cursor, pagination.LimitWithBuffer(limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return paginate(rows, limit)
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID, status *enums.OrderStatus, actor Actor, params pagination.Params) ([]OrderDTO, string, error) {
	if err := authorizeStoreAdmin(storeID, actor); err != nil {
		return nil, "", err
	}
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.repo.ListByStore(ctx, storeID, status, cursor, pagination.LimitWithBuffer(limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list store orders")
	}
	return paginate(rows, limit)
}

// SubmitPaymentProof attaches a transfer receipt and moves the order to
// waiting_payment_confirmation. Only the order's owner may submit.
func (s *service) SubmitPaymentProof(ctx context.Context, orderID uuid.UUID, actor Actor, imageURL string, notes *string) (*OrderDTO, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proof image url required")
	}
	return s.transition(ctx, orderID, EventProofSubmitted, actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		if order.UserID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
		if order.PaymentMethod != enums.PaymentMethodManualTransfer {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment proofs apply to manual transfer orders only")
		}
		return repo.CreatePaymentProof(ctx, &models.PaymentProof{
			OrderID:  order.ID,
			UserID:   actor.UserID,
			ImageURL: imageURL,
			Status:   enums.PaymentProofStatusPending,
			Notes:    notes,
		})
	})
}

// VerifyPaymentProof approves or rejects the pending proof. Approval confirms
// payment and consumes the order's vouchers; rejection reopens the payment
// window at the original deadline.
func (s *service) VerifyPaymentProof(ctx context.Context, orderID uuid.UUID, actor Actor, approve bool, reviewNotes *string) (*OrderDTO, error) {
	event := EventProofApproved
	if !approve {
		event = EventProofRejected
	}
	return s.transition(ctx, orderID, event, actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		if err := authorizeStoreAdmin(order.StoreID, actor); err != nil {
			return err
		}
		proof, err := repo.FindLatestPendingProof(ctx, order.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no pending payment proof")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment proof")
		}
		now := s.now()
		proof.Status = enums.PaymentProofStatusRejected
		if approve {
			proof.Status = enums.PaymentProofStatusApproved
		}
		proof.ReviewedBy = &actor.UserID
		proof.ReviewedAt = &now
		if reviewNotes != nil {
			proof.Notes = reviewNotes
		}
		if err := repo.SavePaymentProof(ctx, proof); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save payment proof")
		}
		if approve {
			order.PaymentStatus = enums.PaymentStatusPaid
			if err := s.consumeVouchers(ctx, repo, order.ID); err != nil {
				return err
			}
			return s.emitOrderEvent(ctx, tx, enums.EventOrderPaid, order, actor, now)
		}
		return nil
	})
}

// MarkPaidByGateway applies a successful gateway settlement. The reconciler
// calls it; a settlement landing on an already-processing order is a replay
// and must not fail, so the caller checks the status first.
func (s *service) MarkPaidByGateway(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	actor := Actor{Role: enums.UserRoleCustomer}
	return s.transition(ctx, orderID, EventGatewaySuccess, actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		if order.PaymentMethod != enums.PaymentMethodGateway {
			return pkgerrors.New(pkgerrors.CodeValidation, "order is not a gateway order")
		}
		order.PaymentStatus = enums.PaymentStatusPaid
		if err := s.consumeVouchers(ctx, repo, order.ID); err != nil {
			return err
		}
		return s.emitOrderEvent(ctx, tx, enums.EventOrderPaid, order, actor, s.now())
	})
}

// Ship moves a processing order out the door. The reserved units are
// re-verified under lock before the status flips.
func (s *service) Ship(ctx context.Context, input ShipInput) (*OrderDTO, error) {
	return s.transition(ctx, input.OrderID, EventShip, input.Actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		if err := authorizeStoreAdmin(order.StoreID, input.Actor); err != nil {
			return err
		}
		lines := make([]inventory.Line, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		if err := s.stock.VerifyReserved(ctx, tx, order.StoreID, lines); err != nil {
			return err
		}
		now := s.now()
		if tracking := strings.TrimSpace(input.TrackingNumber); tracking != "" {
			order.TrackingNumber = &tracking
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}
		order.ShippedAt = &now
		return s.emitOrderEvent(ctx, tx, enums.EventOrderShipped, order, input.Actor, now)
	})
}

// ConfirmReceipt closes the order. The owner confirms explicitly; the sweeper
// confirms on their behalf after the auto-confirm window.
func (s *service) ConfirmReceipt(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDTO, error) {
	return s.transition(ctx, orderID, EventConfirm, actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		if actor.UserID != uuid.Nil && order.UserID != actor.UserID && !actor.Role.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
		now := s.now()
		order.ConfirmedAt = &now
		return s.emitOrderEvent(ctx, tx, enums.EventOrderConfirmed, order, actor, now)
	})
}

// Cancel releases the order's reserved stock and records the reason. Expired
// cancellations come from the sweeper and emit order.expired instead of
// order.cancelled.
func (s *service) Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error) {
	return s.transition(ctx, input.OrderID, EventCancel, input.Actor, func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error {
		actor := input.Actor
		if actor.UserID != uuid.Nil && !actor.Role.IsAdmin() && order.UserID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
		if actor.Role.IsAdmin() {
			if err := authorizeStoreAdmin(order.StoreID, actor); err != nil {
				return err
			}
		}
		lines := make([]inventory.Line, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		note := fmt.Sprintf("release for cancelled order %s", order.OrderNumber)
		if input.Expired {
			note = fmt.Sprintf("release for expired order %s", order.OrderNumber)
		}
		if err := s.stock.Release(ctx, tx, order.StoreID, lines, actor.UserID, note); err != nil {
			return err
		}
		now := s.now()
		order.CancelledAt = &now
		if input.Reason != "" {
			reason := input.Reason
			order.Notes = &reason
		}
		eventType := enums.EventOrderCancelled
		if input.Expired {
			eventType = enums.EventOrderExpired
		}
		return s.emitOrderEvent(ctx, tx, eventType, order, actor, now)
	})
}

// transition is the shared skeleton of every lifecycle operation: lock the
// order, resolve the state machine, run the operation's own work, then persist
// the new status. The state machine runs first so an invalid pair never
// reaches the mutation.
func (s *service) transition(
	ctx context.Context,
	orderID uuid.UUID,
	event Event,
	actor Actor,
	mutate func(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order) error,
) (*OrderDTO, error) {
	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		next, err := NextStatus(order.Status, event)
		if err != nil {
			return err
		}
		if err := mutate(ctx, tx, repo, order); err != nil {
			return err
		}
		order.Status = next
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save order")
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, result.ID.String())
		ctx = s.logg.WithField(ctx, "status", result.Status.String())
		s.logg.Info(ctx, "order transitioned")
	}
	return FromModel(result), nil
}

// consumeVouchers increments each voucher's usage counter at most once per
// order, guarded by the applied voucher's consumed flag.
func (s *service) consumeVouchers(ctx context.Context, repo Repository, orderID uuid.UUID) error {
	applied, err := repo.FindAppliedVouchers(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load applied vouchers")
	}
	for _, av := range applied {
		if av.Consumed {
			continue
		}
		if err := repo.IncrementVoucherUsage(ctx, av.VoucherID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment voucher usage")
		}
		if err := repo.MarkAppliedVoucherConsumed(ctx, av.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark voucher consumed")
		}
	}
	return nil
}

func (s *service) emitOrderEvent(ctx context.Context, tx *gorm.DB, eventType enums.OutboxEventType, order *models.Order, actor Actor, at time.Time) error {
	if s.events == nil {
		return nil
	}
	var ref *outbox.ActorRef
	if actor.UserID != uuid.Nil {
		ref = &outbox.ActorRef{UserID: actor.UserID, StoreID: actor.StoreID, Role: actor.Role.String()}
	}
	return s.events.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         ref,
		Data: outbox.OrderEventData{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			StoreID:     order.StoreID,
			UserID:      order.UserID,
			Status:      order.Status.String(),
			TotalCents:  order.TotalCents,
			OccurredAt:  at,
		},
		OccurredAt: at,
	})
}

func validateCheckout(input CheckoutInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(input.Address.Line) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address line required")
	}
	if input.ShippingMethodID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping method required")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id required on every item")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("quantity for product %s must be positive", item.ProductID))
		}
		if _, dup := seen[item.ProductID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate product %s in cart", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

func authorizeRead(order *models.Order, actor Actor) error {
	if order.UserID == actor.UserID {
		return nil
	}
	if actor.Role == enums.UserRoleSuperAdmin {
		return nil
	}
	if actor.Role == enums.UserRoleStoreAdmin && actor.StoreID != nil && *actor.StoreID == order.StoreID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this order")
}

func authorizeStoreAdmin(storeID uuid.UUID, actor Actor) error {
	if actor.Role == enums.UserRoleSuperAdmin {
		return nil
	}
	if actor.Role == enums.UserRoleStoreAdmin && actor.StoreID != nil && *actor.StoreID == storeID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "store admin access required")
}

// newOrderNumber yields FM-YYYYMMDD-XXXXXX with a random uppercase suffix.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("FM-%s-%s", now.Format("20060102"), suffix)
}

func paginate(rows []models.Order, limit int) ([]OrderDTO, string, error) {
	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, next, nil
}
