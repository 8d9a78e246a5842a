package pricing

import (
	"math"

	"github.com/freshmart-id/freshmart-backend/pkg/config"
)

// shippingCost is the method base cost plus a per-km rate for every started
// kilometre beyond the free-shipping distance.
func shippingCost(baseCents int64, distanceKM float64, cfg config.ShippingConfig) int64 {
	cost := baseCents
	if extra := distanceKM - cfg.FreeDistanceKM; extra > 0 {
		cost += cfg.RatePerKMCents * int64(math.Ceil(extra))
	}
	if cost < 0 {
		return 0
	}
	return cost
}
