package controllers

import (
	"net/http"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/responses"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/config"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VapeTrack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired backing service. Redis is optional; a nil
// client is reported as skipped rather than failing readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, store rowstore.Pinger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VapeTrack-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if store == nil {
			checks["store"] = "missing"
			healthy = false
		} else if err := store.Ping(r.Context()); err != nil {
			checks["store"] = "down"
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "readiness: store ping failed", err)
			}
		} else {
			checks["store"] = "ok"
		}

		if redisClient == nil {
			checks["redis"] = "skipped"
		} else if err := redisClient.Ping(r.Context()); err != nil {
			checks["redis"] = "down"
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "readiness: redis ping failed", err)
			}
		} else {
			checks["redis"] = "ok"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "one or more backing services unavailable").
					WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
