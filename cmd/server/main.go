// Command server wires the reservation backend: storage, the eligibility
// engine, HTTP and Kafka transports, and the cleanup worker.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/auth"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/auth/session"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/building"
	buildingstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/building/store"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/eligibility"
	httpapi "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/http"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/messaging"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/config"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/httpserver"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/logger"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/postgres"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/redis"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/cleanup"
	reservationmetrics "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/metrics"
	reservationstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/store"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space"
	spacestore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space/store"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/user"
	userstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/user/store"
)

// reservationStorage joins the lifecycle store with the engine's read/flip
// surface; both backends implement the union.
type reservationStorage interface {
	reservation.Store
	eligibility.ReservationReader
}

// defaultBuildingConfig seeds the in-memory store with the standard Ada Byron
// schedule until an administrator overrides it.
func defaultBuildingConfig() (domain.BuildingConfig, error) {
	hours, err := domain.NewOpeningHours(
		domain.DayHours{Open: "08:00", Close: "21:30"},
		domain.DayHours{Open: "09:00", Close: "14:00"},
		domain.DayHours{},
	)
	if err != nil {
		return domain.BuildingConfig{}, err
	}
	return domain.NewBuildingConfig(100, hours)
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: PostgreSQL when a DSN is configured, in-memory otherwise.
	var (
		users        user.Store
		spaces       space.Store
		reservations reservationStorage
		buildingCfg  building.Store
		db           *sql.DB
	)
	if cfg.PostgresDSN != "" {
		var err error
		db, err = postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		spaces = spacestore.NewPostgres(db)
		reservations = reservationstore.NewPostgres(db)
		buildingCfg = buildingstore.NewPostgres(db)
	} else {
		log.Warn("no postgres dsn configured, using in-memory stores")
		defaults, err := defaultBuildingConfig()
		if err != nil {
			log.Error("failed to build default building config", "error", err)
			os.Exit(1)
		}
		users = userstore.NewInMemory()
		spaces = spacestore.NewInMemory()
		reservations = reservationstore.NewInMemory()
		buildingCfg = buildingstore.NewInMemory(defaults)
	}

	// Sessions: Redis when configured, in-memory otherwise.
	var sessions auth.SessionStore
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = redis.New(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		sessions = session.NewRedis(redisClient.Client)
	} else {
		log.Warn("no redis url configured, using in-memory sessions")
		sessions = session.NewInMemory()
	}

	engine, err := eligibility.NewService(users, spaces, reservations, buildingCfg,
		eligibility.WithLogger(log))
	if err != nil {
		log.Error("failed to build eligibility service", "error", err)
		os.Exit(1)
	}

	userSvc := user.New(users, user.WithLogger(log), user.WithRevalidator(engine))
	spaceSvc := space.New(spaces, space.WithLogger(log), space.WithRevalidator(engine))
	buildingSvc := building.New(buildingCfg,
		building.WithLogger(log),
		building.WithRevalidation(spaces, engine))
	reservationSvc := reservation.New(reservations, engine,
		reservation.WithLogger(log),
		reservation.WithMetrics(reservationmetrics.New()))

	tokens := auth.NewTokenService(cfg.JWTSigningKey, "reservas")
	authSvc := auth.New(users, sessions, tokens, cfg.SessionTTL, auth.WithLogger(log))

	probes := map[string]httpapi.HealthChecker{}
	if db != nil {
		probes["postgres"] = postgres.Probe(db)
	}
	if redisClient != nil {
		probes["redis"] = redisClient
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Validator: authSvc,
		Sessions:  authSvc,
		Auth:      auth.NewHandler(authSvc, log),
		API: []httpapi.Registrar{
			user.NewHandler(userSvc, log),
			space.NewHandler(spaceSvc, log),
			reservation.NewHandler(reservationSvc, log),
			building.NewHandler(buildingSvc, log),
		},
		Probes: probes,
	})
	srv := httpserver.New(cfg.HTTPAddr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if len(cfg.KafkaBrokers) > 0 {
		responder, err := messaging.NewResponder(ctx, messaging.Config{
			Brokers:      cfg.KafkaBrokers,
			Group:        "reservas-backend",
			RequestTopic: "reservas.requests",
			ReplyTopic:   "reservas.replies",
			Logger:       log,
		})
		if err != nil {
			log.Error("failed to start kafka responder", "error", err)
			os.Exit(1)
		}
		defer responder.Close()
		messaging.Bind(responder, messaging.Services{
			Reservations: reservationSvc,
			Spaces:       spaceSvc,
			Building:     buildingSvc,
		})
		g.Go(func() error {
			log.Info("kafka responder running", "brokers", cfg.KafkaBrokers)
			if err := responder.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	worker := cleanup.New(reservations, cfg.CleanupInterval, cfg.CleanupRetention,
		cleanup.WithLogger(log),
		cleanup.WithNotifier(cleanup.NewLogNotifier(log)))
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
