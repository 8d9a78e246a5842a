package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freshmart-id/freshmart-backend/api/controllers"
	"github.com/freshmart-id/freshmart-backend/api/middleware"
	"github.com/freshmart-id/freshmart-backend/internal/inventory"
	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/internal/payments"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	ordersService orders.Service,
	paymentsService payments.Service,
	inventoryService inventory.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payment", controllers.PaymentWebhook(paymentsService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/checkout", controllers.Checkout(ordersService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
			r.Post("/{orderId}/confirm", controllers.ConfirmOrder(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(ordersService, logg))
			r.Post("/{orderId}/payment-proof", controllers.SubmitPaymentProof(ordersService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireAdmin(logg),
		)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(ordersService, logg))
			r.Post("/{orderId}/ship", controllers.ShipOrder(ordersService, logg))
			r.Post("/{orderId}/verify-payment", controllers.VerifyPayment(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.AdminCancelOrder(ordersService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/adjust", controllers.AdjustInventory(inventoryService, logg))
			r.Get("/{inventoryId}/journal", controllers.InventoryJournal(inventoryService, logg))
		})
	})

	return r
}
