// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"solar-workers/internal/common/camunda"
	"solar-workers/internal/common/config"
	"solar-workers/internal/common/database"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/common/metrics"
	"solar-workers/internal/common/observability"
	"solar-workers/internal/solar/compliance"
	"solar-workers/internal/solar/location"
	"solar-workers/internal/solar/national"

	css "solar-workers/internal/workers/calculator/calculate-solar-savings"
	caf "solar-workers/internal/workers/calculator/check-apartment-feasibility"
	ccc "solar-workers/internal/workers/calculator/check-content-compliance"
	ens "solar-workers/internal/workers/calculator/estimate-national-savings"
	eiq "solar-workers/internal/workers/calculator/evaluate-installer-quote"
	gci "solar-workers/internal/workers/calculator/generate-calculator-insight"
	rlc "solar-workers/internal/workers/calculator/resolve-location-config"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// jobTimeout uses the configured worker timeout when the worker has an entry
// in config, otherwise the handler's own default.
func jobTimeout(cfg *config.Config, taskType string, def time.Duration) time.Duration {
	if wc, ok := cfg.Workers[taskType]; ok && wc.Timeout > 0 {
		return config.GetDuration(wc.Timeout)
	}
	return def
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console", "stderr")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, observability.WithLogger(log))
	defer obs.Shutdown()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Location tables: built-in, file overlay, database overrides ---
	base := location.DefaultTables()
	if cfg.Locations.TablePath != "" {
		base, err = location.LoadFile(cfg.Locations.TablePath, base)
		if err != nil {
			zapLog.Fatal("location table load failed", zap.Error(err))
		}
		zapLog.Info("Location table loaded", zap.String("path", cfg.Locations.TablePath))
	}

	resolver := location.NewResolver(base, log, location.WithFallbackHook(func(tier location.Tier, key string) {
		metrics.LocationFallbacks.WithLabelValues(string(tier)).Inc()
	}))

	if cfg.Locations.UseDatabase {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		if cfg.Locations.Migrate {
			if err := pg.Migrate(ctx, location.Schema...); err != nil {
				zapLog.Fatal("location schema migration failed", zap.Error(err))
			}
		}

		store := location.NewStore(pg.GetDB(), log)
		if tables, err := store.Load(ctx, base); err != nil {
			zapLog.Warn("location overrides unavailable, using file tables", zap.Error(err))
		} else {
			resolver.Swap(tables)
		}
		go store.Watch(ctx, resolver, base, time.Duration(cfg.Locations.ReloadInterval)*time.Second)
	}

	// --- Compliance sessions, optionally mirrored to Redis ---
	var sessionOpts []compliance.SessionOption
	if cfg.Compliance.AuditSinkEnabled {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		zapLog.Info("Redis connected successfully")

		sink := compliance.NewRedisSink(rc.GetClient(), cfg.Compliance.AuditKeyPrefix,
			time.Duration(cfg.Compliance.AuditListTTL)*time.Second)
		sessionOpts = append(sessionOpts, compliance.WithAuditSink(sink))
	}
	sessions := compliance.NewRegistry(log,
		compliance.WithSessionOptions(sessionOpts...),
		compliance.WithIdleTTL(time.Duration(cfg.Compliance.SessionIdleTTL)*time.Second),
		compliance.WithEvictHook(func(compliance.SessionReport) {
			metrics.ComplianceSessionsEvicted.Inc()
		}),
	)
	manager := compliance.NewManager(nil, log,
		compliance.WithGenerateTimeout(config.GetDuration(cfg.Compliance.GenerateTimeout)))

	// --- Register workers ---
	client := zeebeClient.GetClient()
	var workers []worker.JobWorker
	register := func(taskType string, handler camunda.HandlerFunc) {
		if jw := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, zapLog); jw != nil {
			workers = append(workers, jw)
		}
	}

	{
		c := rlc.LoadConfig()
		c.Timeout = jobTimeout(cfg, rlc.TaskType, c.Timeout)
		register(rlc.TaskType, rlc.NewHandler(c, resolver, obs, log).Handle)
	}
	{
		c := css.LoadConfig()
		c.Timeout = jobTimeout(cfg, css.TaskType, c.Timeout)
		c.EnforceBillBounds = cfg.Calculator.EnforceBillBounds
		c.BillBounds.Min = cfg.Calculator.MinMonthlyBill
		c.BillBounds.Max = cfg.Calculator.MaxMonthlyBill
		register(css.TaskType, css.NewHandler(c, resolver, obs, log).Handle)
	}
	{
		c := eiq.LoadConfig()
		c.Timeout = jobTimeout(cfg, eiq.TaskType, c.Timeout)
		register(eiq.TaskType, eiq.NewHandler(c, obs, log).Handle)
	}
	{
		c := ccc.LoadConfig()
		c.Timeout = jobTimeout(cfg, ccc.TaskType, c.Timeout)
		register(ccc.TaskType, ccc.NewHandler(c, sessions, obs, log).Handle)
	}
	{
		c := gci.LoadConfig()
		c.Timeout = jobTimeout(cfg, gci.TaskType, c.Timeout)
		register(gci.TaskType, gci.NewHandler(c, manager, sessions, obs, log).Handle)
	}
	{
		c := ens.LoadConfig()
		c.Timeout = jobTimeout(cfg, ens.TaskType, c.Timeout)
		register(ens.TaskType, ens.NewHandler(c, national.NewCalculator(nil), obs, log).Handle)
	}
	{
		c := caf.LoadConfig()
		c.Timeout = jobTimeout(cfg, caf.TaskType, c.Timeout)
		register(caf.TaskType, caf.NewHandler(c, obs, log).Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & metrics server ---
	var ready atomic.Bool
	ready.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status, code := "ready", http.StatusOK
		gateway := "reachable"
		if err := zeebeClient.HealthCheck(r.Context()); err != nil {
			status, code, gateway = "degraded", http.StatusServiceUnavailable, err.Error()
		}
		if !ready.Load() {
			status, code = "shutting_down", http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       status,
			"gateway":      gateway,
			"workers":      len(workers),
			"openSessions": sessions.Len(),
			"time":         time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	ready.Store(false)

	for _, jw := range workers {
		jw.Close()
	}
	for _, jw := range workers {
		jw.AwaitClose()
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
