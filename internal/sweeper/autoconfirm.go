package sweeper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

// AutoConfirmJob confirms shipped orders the customer never acknowledged
// once the grace period runs out.
type AutoConfirmJob struct {
	repo      orders.Repository
	orderSvc  orders.Service
	logg      *logger.Logger
	interval  time.Duration
	gracePerd time.Duration
	batchSize int
	now       func() time.Time
}

// NewAutoConfirmJob builds the shipped-order confirmation sweep.
func NewAutoConfirmJob(repo orders.Repository, orderSvc orders.Service, logg *logger.Logger, cfg config.SweeperConfig) (*AutoConfirmJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	interval := cfg.AutoConfirmInterval
	if interval <= 0 {
		interval = time.Hour
	}
	grace := cfg.AutoConfirmAfter
	if grace <= 0 {
		grace = 7 * 24 * time.Hour
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	return &AutoConfirmJob{
		repo:      repo,
		orderSvc:  orderSvc,
		logg:      logg,
		interval:  interval,
		gracePerd: grace,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

func (j *AutoConfirmJob) Name() string { return "order-auto-confirm" }

func (j *AutoConfirmJob) Interval() time.Duration { return j.interval }

func (j *AutoConfirmJob) Run(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.gracePerd)
	shipped, err := j.repo.FindShippedBefore(ctx, cutoff, j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("find shipped orders: %w", err)
	}

	var errs error
	processed := 0
	for _, order := range shipped {
		_, err := j.orderSvc.ConfirmReceipt(ctx, order.ID, sweeperActor())
		if err != nil {
			if j.logg != nil {
				j.logg.Error(j.logg.WithOrderID(ctx, order.ID.String()), "auto-confirm failed", err)
			}
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", order.OrderNumber, err))
			continue
		}
		processed++
	}
	return processed, errs
}
