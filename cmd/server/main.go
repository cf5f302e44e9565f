// Command server runs the consortium verification cost-sharing ledger: an
// HTTP API over the registry, onboarding, debt, update, and reputation
// services. main wires dependencies and owns the process lifecycle; business
// logic lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kycshare/internal/debt"
	"kycshare/internal/events"
	eventspg "kycshare/internal/events/store/postgres"
	"kycshare/internal/ledger"
	ledgerstore "kycshare/internal/ledger/store"
	"kycshare/internal/onboarding"
	"kycshare/internal/onboarding/tracer"
	"kycshare/internal/platform/config"
	"kycshare/internal/platform/database"
	"kycshare/internal/platform/health"
	"kycshare/internal/platform/kafka"
	"kycshare/internal/platform/kafka/producer"
	"kycshare/internal/platform/logger"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/platform/middleware"
	platformredis "kycshare/internal/platform/redis"
	"kycshare/internal/registry"
	"kycshare/internal/reputation"
	"kycshare/internal/reputation/cache"
	"kycshare/internal/reverify"
	httptransport "kycshare/internal/transport/http"
	id "kycshare/pkg/domain"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Best effort; the process environment wins over .env entries.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing kycshare ledger",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"regulators", len(cfg.RegulatorSubjects),
	)

	m := metrics.New()
	healthHandler := health.New(cfg.Environment)

	store := ledgerstore.NewInMemory()
	tx := ledger.NewShardedTx(store)

	// Journal: postgres when configured, otherwise in memory.
	var journal events.Store = events.NewInMemoryStore()
	pool, err := func() (*database.Pool, error) {
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.DatabaseURL
		return database.New(dbCfg)
	}()
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		journal = eventspg.New(pool.DB())
		healthHandler.RegisterCheck("postgres", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
		log.Info("event journal backed by postgres")
	}

	publisherOpts := []events.PublisherOption{
		events.WithAsyncBuffer(cfg.EventBuffer),
		events.WithPublisherLogger(log),
	}
	var kafkaProducer *producer.Producer
	if len(cfg.KafkaBrokers) > 0 {
		brokers := strings.Join(cfg.KafkaBrokers, ",")
		kafkaProducer, err = producer.New(producer.Config{
			Brokers: brokers,
			Retries: 5,
		})
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		publisherOpts = append(publisherOpts, events.WithSink(events.NewKafkaSink(kafkaProducer, cfg.KafkaTopic)))
		kafkaHealth := kafka.NewHealthChecker(brokers)
		healthHandler.RegisterCheck("kafka", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return kafkaHealth.Check(ctx)
		})
		log.Info("ledger events forwarded to kafka", "brokers", brokers)
	}
	publisher := events.NewPublisher(journal, publisherOpts...)
	defer publisher.Close()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	reputationOpts := []reputation.Option{reputation.WithMetrics(m)}
	if redisClient != nil {
		defer redisClient.Close()
		reputationOpts = append(reputationOpts,
			reputation.WithCache(cache.NewRedisCache(redisClient.Client, cfg.RatingCacheTTL)))
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		})
		log.Info("rating reads cached in redis", "ttl", cfg.RatingCacheTTL)
	}

	regulators := make([]id.Address, 0, len(cfg.RegulatorSubjects))
	for _, subject := range cfg.RegulatorSubjects {
		regulators = append(regulators, id.Address(subject))
	}

	registrySvc := registry.NewService(tx, log, registry.WithMetrics(m))
	onboardingSvc := onboarding.NewService(tx, reverify.NewTrigger(nil), publisher, log,
		onboarding.WithMetrics(m),
		onboarding.WithTracer(tracer.NewOTel()),
	)
	debtSvc := debt.NewService(tx, log, debt.WithMetrics(m))
	updateSvc := reverify.NewService(tx, publisher, regulators, log,
		reverify.WithUpdateCostFactor(cfg.UpdateCostFactor),
		reverify.WithMetrics(m),
	)
	reputationSvc := reputation.NewService(tx, log, reputationOpts...)

	handler := httptransport.NewHandler(registrySvc, onboardingSvc, debtSvc, updateSvc, reputationSvc, publisher, log)
	router := httptransport.NewRouter(handler, log, httptransport.RouterConfig{
		Validator: middleware.NewHMACValidator(cfg.JWTSigningKey),
		Metrics:   m,
		Health:    healthHandler,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
