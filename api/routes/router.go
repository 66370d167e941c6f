package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/controllers"
	"github.com/migueldelacruz-dev/vapetrack-backend/api/middleware"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/inventory"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/loans"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/sales"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/warranty"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/config"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger rowstore.Pinger,
	redisClient *redis.Client,
	inventoryService inventory.Service,
	saleEngine *sales.Engine,
	loanLedger *loans.Ledger,
	warrantyEngine *warranty.Engine,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// Replay protection only engages when Redis is configured.
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}
	r.Use(middleware.Idempotency(idempotencyStore, logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger, pinger(redisClient)))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Get("/low-stock", controllers.InventoryLowStock(inventoryService, logg))
			r.Post("/", controllers.InventoryAdd(inventoryService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SaleList(saleEngine, logg))
			r.Post("/", controllers.SaleCreate(saleEngine, logg))
		})

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", controllers.LoanList(loanLedger, logg))
			r.Post("/{loanId}/paid", controllers.LoanMarkPaid(loanLedger, logg))
			r.Post("/{loanId}/due-date", controllers.LoanSetDueDate(loanLedger, logg))
		})

		r.Route("/warranty", func(r chi.Router) {
			r.Get("/", controllers.WarrantyList(warrantyEngine, logg))
			r.Post("/", controllers.WarrantyClaim(warrantyEngine, logg))
		})
	})

	return r
}

// pinger keeps a typed nil *redis.Client from leaking into the readiness
// check as a non-nil interface.
func pinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
