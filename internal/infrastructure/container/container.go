// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/aislehq/pantry/internal/application/asset"
	appinventory "github.com/aislehq/pantry/internal/application/inventory"
	"github.com/aislehq/pantry/internal/application/recipes"
	"github.com/aislehq/pantry/internal/infrastructure/ai/openrouter"
	"github.com/aislehq/pantry/internal/infrastructure/config"
	"github.com/aislehq/pantry/internal/infrastructure/http/handlers"
	"github.com/aislehq/pantry/internal/infrastructure/http/server"
	"github.com/aislehq/pantry/internal/infrastructure/monitoring"
	fsrepo "github.com/aislehq/pantry/internal/infrastructure/persistence/firestore"
	"github.com/aislehq/pantry/internal/infrastructure/persistence/memory"
	"github.com/aislehq/pantry/internal/infrastructure/storage/gcs"
	"github.com/aislehq/pantry/internal/ports/inbound"
	"github.com/aislehq/pantry/internal/ports/outbound"
	"github.com/aislehq/pantry/pkg/healthcheck"
	"github.com/aislehq/pantry/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	HealthModule,
	AdapterModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides the metrics registry and collectors
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return registry
	},
	func(registry *prometheus.Registry) *monitoring.Metrics {
		return monitoring.NewMetrics(registry)
	},
)

// HealthModule provides the health check registry. The inventory store is
// probed through the repository port, so the in-memory and Firestore
// adapters are checked the same way; the completion upstream is probed over
// HTTP when an API key is configured.
var HealthModule = fx.Provide(
	func(cfg *config.Config, items outbound.ItemRepository, log *zap.Logger) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log.Named("healthcheck"))

		hc.Register("inventory-store", healthcheck.CheckerFunc(
			func(ctx context.Context) (healthcheck.Status, string, interface{}) {
				all, err := items.FindAll(ctx)
				if err != nil {
					return healthcheck.StatusUnhealthy, err.Error(), nil
				}
				return healthcheck.StatusHealthy, "", map[string]interface{}{"items": len(all)}
			},
		))

		if cfg.AI.APIKey != "" {
			hc.Register("completions", healthcheck.NewExternalServiceChecker(
				"completions", cfg.AI.BaseURL+"/models", cfg.AI.Timeout,
			))
		}

		return hc
	},
)

// AdapterModule provides the outbound adapters: item repository, blob
// storage, and the completion client. The in-memory adapters are used when
// configured for local development.
var AdapterModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.ItemRepository, error) {
		if cfg.Firestore.UseMemory {
			log.Info("Using in-memory item repository")
			return memory.NewItemRepository(), nil
		}

		client, err := fsrepo.NewClient(context.Background(), cfg.Firestore)
		if err != nil {
			return nil, err
		}

		log.Info("Connected to Firestore",
			zap.String("project", cfg.Firestore.ProjectID),
			zap.String("collection", cfg.Firestore.Collection),
		)
		return fsrepo.NewItemRepository(client, cfg.Firestore.Collection, log), nil
	},

	func(cfg *config.Config, log *zap.Logger) (outbound.BlobStorage, error) {
		if cfg.Storage.UseMemory {
			log.Info("Using in-memory blob storage")
			return memory.NewBlobStorage(), nil
		}

		client, err := gcs.NewClient(context.Background(), cfg.Storage)
		if err != nil {
			return nil, err
		}

		log.Info("Connected to Cloud Storage", zap.String("bucket", cfg.Storage.Bucket))
		return gcs.NewBlobStorage(client, cfg.Storage.Bucket, log), nil
	},

	func(cfg *config.Config, log *zap.Logger) outbound.CompletionService {
		return openrouter.NewClient(cfg.AI, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	asset.NewManager,

	fx.Annotate(
		func(items outbound.ItemRepository, assets *asset.Manager, metrics *monitoring.Metrics, log *zap.Logger) *appinventory.Service {
			return appinventory.NewService(items, assets, metrics, log)
		},
		fx.As(new(inbound.InventoryService)),
	),

	fx.Annotate(
		recipes.NewService,
		fx.As(new(inbound.RecipeService)),
	),
)

// HTTPModule provides the HTTP presentation adapter
var HTTPModule = fx.Provide(
	handlers.NewInventoryAPI,
	server.New,
)

// LifecycleModule starts and stops the HTTP server
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server) {
		lc.Append(fx.Hook{
			OnStart: srv.Start,
			OnStop:  srv.Stop,
		})
	},
)
