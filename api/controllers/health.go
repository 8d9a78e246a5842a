package controllers

import (
	"net/http"

	"github.com/freshmart-id/freshmart-backend/api/responses"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreshMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady fails when a hard dependency is unreachable so the load
// balancer stops routing to this instance.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger db.Pinger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreshMart-Env", cfg.App.Env)
		if dbPinger != nil {
			if err := dbPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
