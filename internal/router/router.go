package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "blood-donor-network/docs"
	mem "blood-donor-network/internal/adapters/storage/memory"
	pg "blood-donor-network/internal/adapters/storage/postgres"
	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/domain/lifesaver"
	"blood-donor-network/internal/domain/responses"
	"blood-donor-network/internal/domain/stats"
	"blood-donor-network/internal/middleware"
	"blood-donor-network/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Events publica eventos de dominio hacia afuera (redisbus.Bus).
type Events interface {
	lifesaver.Notifier
	bloodrequests.Broadcaster
}

type Options struct {
	Log     *zap.Logger // puede ser nil
	Metrics *metrics.Metrics

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil desactiva la publicación de eventos.
	Events Events

	// MaxReassignments corta la cadena de reasignaciones (0 = sin límite).
	MaxReassignments int

	// Seed carga el set fijo de donantes y solicitudes si el store está vacío.
	Seed bool
}

type stores struct {
	donors    donors.Repository
	requests  bloodrequests.Repository
	responses responses.Repository
	lifesaver lifesaver.Repository
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log.Named("http"), m))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	st := newStores(opts.DB)
	if opts.DB != nil {
		log.Info("using postgres storage")
	} else {
		log.Info("using in-memory storage")
	}

	if opts.Seed {
		if err := seedIfEmpty(context.Background(), st); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var (
		notifier    lifesaver.Notifier
		broadcaster bloodrequests.Broadcaster
	)
	if opts.Events != nil {
		notifier = opts.Events
		broadcaster = opts.Events
	}

	// Services por módulo
	donorsSvc := donors.NewService(st.donors, log)
	requestsSvc := bloodrequests.NewService(st.requests, broadcaster, m, log)
	responsesSvc := responses.NewService(st.responses, requestsSvc, donorsSvc, log)
	lifesaverSvc := lifesaver.NewService(st.lifesaver, donorsSvc, lifesaver.Options{
		Log:              log,
		Metrics:          m,
		Notifier:         notifier,
		MaxReassignments: opts.MaxReassignments,
	})
	statsSvc := stats.NewService(donorsSvc, requestsSvc, lifesaverSvc, log)

	// Rutas por módulo
	donors.RegisterRoutes(r, donorsSvc)
	bloodrequests.RegisterRoutes(r, requestsSvc)
	responses.RegisterRoutes(r, responsesSvc)
	lifesaver.RegisterRoutes(r, lifesaverSvc)
	stats.RegisterRoutes(r, statsSvc)

	return r, nil
}

func newStores(db *sql.DB) stores {
	if db != nil {
		return stores{
			donors:    pg.NewDonorsRepo(db),
			requests:  pg.NewBloodRequestsRepo(db),
			responses: pg.NewResponsesRepo(db),
			lifesaver: pg.NewLifeSaverRepo(db),
		}
	}
	return stores{
		donors:    mem.NewDonorRepo(),
		requests:  mem.NewBloodRequestRepo(),
		responses: mem.NewResponseRepo(),
		lifesaver: mem.NewLifeSaverRepo(),
	}
}

// seedIfEmpty no pisa datos: en Postgres el seed corre solo la primera vez.
func seedIfEmpty(ctx context.Context, st stores) error {
	existing, err := st.donors.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return mem.Seed(ctx, st.donors, st.requests, st.responses)
}
