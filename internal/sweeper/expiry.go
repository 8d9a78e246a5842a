package sweeper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

// ExpiryJob cancels orders whose payment window lapsed, releasing their
// reserved stock. One failing order is logged and skipped; the rest of the
// batch proceeds and the stragglers retry on the next tick.
type ExpiryJob struct {
	repo      orders.Repository
	orderSvc  orders.Service
	logg      *logger.Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewExpiryJob builds the payment expiry sweep.
func NewExpiryJob(repo orders.Repository, orderSvc orders.Service, logg *logger.Logger, cfg config.SweeperConfig) (*ExpiryJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	interval := cfg.ExpiryInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ExpiryJob{
		repo:      repo,
		orderSvc:  orderSvc,
		logg:      logg,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

func (j *ExpiryJob) Name() string { return "order-expiry" }

func (j *ExpiryJob) Interval() time.Duration { return j.interval }

func (j *ExpiryJob) Run(ctx context.Context) (int, error) {
	expired, err := j.repo.FindExpired(ctx, j.now(), j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("find expired orders: %w", err)
	}

	var errs error
	processed := 0
	for _, order := range expired {
		_, err := j.orderSvc.Cancel(ctx, orders.CancelInput{
			OrderID: order.ID,
			Reason:  "payment window expired",
			Expired: true,
			Actor:   sweeperActor(),
		})
		if err != nil {
			if j.logg != nil {
				j.logg.Error(j.logg.WithOrderID(ctx, order.ID.String()), "expiry cancellation failed", err)
			}
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", order.OrderNumber, err))
			continue
		}
		processed++
	}
	return processed, errs
}

// sweeperActor acts on any order without a user identity.
func sweeperActor() orders.Actor {
	return orders.Actor{Role: enums.UserRoleSuperAdmin}
}
