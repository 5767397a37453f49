// Package app wires configuration, storage, the event bus and every module
// into one runnable backend.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	"github.com/TanzimK12/pvm-kingdom/app/modules/detection"
	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/app/modules/ops"
	"github.com/TanzimK12/pvm-kingdom/app/modules/progress"
	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/app/modules/routing"
	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/app/modules/submission"
	submissionservice "github.com/TanzimK12/pvm-kingdom/app/modules/submission/application"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy"
	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/config"
	"github.com/TanzimK12/pvm-kingdom/internal/db/bundb"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
	"github.com/TanzimK12/pvm-kingdom/internal/observability"
	"github.com/TanzimK12/pvm-kingdom/internal/workbook"
)

// App holds the running application.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	EventBus      eventbus.EventBus

	TaxonomyModule   *taxonomy.Module
	RoutingModule    *routing.Module
	DetectionModule  *detection.Module
	SubmissionModule *submission.Module
	ProgressModule   *progress.Module
	OpsModule        *ops.Module

	logger  *slog.Logger
	tracer  trace.Tracer
	routers []*message.Router

	db    *bun.DB
	store *workbook.Store
}

// repositories is the storage surface every module draws from, served either
// by Postgres or by the workbook file.
type repositories struct {
	tiles    taxonomydb.Repository
	routing  routingdb.Repository
	ledger   submissiondb.Repository
	costs    detectiondb.CostRepository
	compiled progressdb.Repository
}

// Initialize builds storage, the event bus and all modules. Each module gets
// its own watermill router so per-module middleware stays isolated.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.logger = obs.Logger
	app.tracer = obs.TracerProvider.Tracer("pvm-kingdom")

	rec := metrics.NewPrometheusRecorder(obs.Registry, "pvmkingdom")

	bus, err := eventbus.New(ctx, cfg.NATS.URL, app.logger, rec)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	if err := bus.CreateStream(ctx, events.SubmissionStream, events.SubmissionSubjects()); err != nil {
		return fmt.Errorf("failed to create submission stream: %w", err)
	}
	if err := bus.CreateStream(ctx, events.DiscordStream, events.DiscordSubjects()); err != nil {
		return fmt.Errorf("failed to create discord stream: %w", err)
	}

	repos, err := app.openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	app.TaxonomyModule = taxonomy.NewTaxonomyModule(ctx, repos.tiles, app.logger, rec, app.tracer)
	app.RoutingModule = routing.NewRoutingModule(repos.routing, app.logger, rec, app.tracer)
	app.DetectionModule = detection.NewDetectionModule(cfg.Vision, repos.costs, app.logger, rec, app.tracer)

	submissionRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.SubmissionModule, err = submission.NewSubmissionModule(
		ctx,
		app.TaxonomyModule.Service,
		app.RoutingModule.Service,
		app.DetectionModule.Service,
		repos.ledger,
		submissionservice.Options{
			RequireElevated: cfg.Approvals.RequireElevated,
			MatchThreshold:  float64(cfg.Approvals.MatchThreshold),
			NameThreshold:   float64(cfg.Approvals.NameThreshold),
		},
		bus,
		submissionRouter,
		app.logger,
		rec,
		app.tracer,
		obs.Registry,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize submission module: %w", err)
	}

	progressRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.ProgressModule, err = progress.NewProgressModule(
		ctx,
		app.TaxonomyModule.Service,
		app.RoutingModule.Service,
		repos.compiled,
		repos.ledger,
		bus,
		progressRouter,
		app.logger,
		rec,
		app.tracer,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize progress module: %w", err)
	}

	opsRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.OpsModule, err = ops.NewOpsModule(
		ctx,
		app.TaxonomyModule.Service,
		app.SubmissionModule.Service,
		bus,
		opsRouter,
		app.logger,
		rec,
		app.tracer,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize ops module: %w", err)
	}

	return nil
}

func (app *App) openStorage(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := bundb.New(ctx, cfg.Postgres.DSN, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
		return &repositories{
			tiles:    &taxonomydb.TileDBImpl{DB: db},
			routing:  &routingdb.RoutingDBImpl{DB: db},
			ledger:   &submissiondb.LedgerDBImpl{DB: db},
			costs:    &detectiondb.CostDBImpl{DB: db},
			compiled: &progressdb.CompiledDBImpl{DB: db},
		}, nil

	case config.BackendWorkbook:
		store, err := workbook.Open(cfg.Storage.WorkbookPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		app.store = store
		return &repositories{
			tiles:    store,
			routing:  store,
			ledger:   store,
			costs:    store,
			compiled: store,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func (app *App) newRouter() (*message.Router, error) {
	r, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(app.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	app.routers = append(app.routers, r)
	return r, nil
}

// Run starts every module router and blocks until the context is canceled or
// a router fails.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range app.routers {
		g.Go(func() error {
			return r.Run(ctx)
		})
	}
	app.logger.InfoContext(ctx, "All module routers running")
	return g.Wait()
}

// Close shuts down routers, the bus and storage.
func (app *App) Close() error {
	var firstErr error
	for _, r := range app.routers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
