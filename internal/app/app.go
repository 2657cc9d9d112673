// Package app assembles the sync layer: storage, identity, providers,
// the scoreboard, prediction coordination, and the polling loops that
// keep them fresh.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/statiq/gridiron-sync/internal/chat"
	"github.com/statiq/gridiron-sync/internal/config"
	"github.com/statiq/gridiron-sync/internal/identity"
	"github.com/statiq/gridiron-sync/internal/ledger"
	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/metrics"
	"github.com/statiq/gridiron-sync/internal/poll"
	"github.com/statiq/gridiron-sync/internal/predict"
	"github.com/statiq/gridiron-sync/internal/providers"
	"github.com/statiq/gridiron-sync/internal/providers/fixture"
	"github.com/statiq/gridiron-sync/internal/providers/statiq"
	"github.com/statiq/gridiron-sync/internal/storage"
	"github.com/statiq/gridiron-sync/internal/store"
	"github.com/statiq/gridiron-sync/internal/teams"
	"github.com/statiq/gridiron-sync/internal/viewmode"
)

const shutdownTimeout = 5 * time.Second

// App owns every long-lived component of the sync layer.
type App struct {
	cfg    config.Config
	logger *slog.Logger

	metrics        *metrics.Recorder
	metricsHandler http.Handler
	metricsStop    func(context.Context) error
	metricsServer  *http.Server

	db          *storage.Store
	identity    *identity.Manager
	ledger      *ledger.Ledger
	provider    providers.DataProvider
	scores      providers.ScoreProvider
	scoreboard  *store.Scoreboard
	predictions *predict.Coordinator
	teams       *teams.Service
	scheduler   *poll.Scheduler
	scoresSub   *poll.Subscription

	loc *time.Location
	now func() time.Time
}

// New wires an App from configuration. The storage file is opened (and
// created) here; callers own Run and eventual shutdown.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	recorder, promHandler, metricsStop, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	db, err := storage.Open(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	ldg, err := ledger.Open(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	loc, err := resolveLocation(cfg.Timezone)
	if err != nil {
		logging.Warn(logger, "unknown timezone, using local", "timezone", cfg.Timezone)
		loc = time.Local
	}

	provider := buildProvider(cfg, logger)
	ids := identity.NewManager(db, logger)

	a := &App{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		metricsHandler: promHandler,
		metricsStop:    metricsStop,
		db:             db,
		identity:       ids,
		ledger:         ldg,
		provider:       provider,
		scores:         providers.NewRetryingScoreProvider(provider, logger, 0, 0),
		scoreboard:     store.NewScoreboard(loc),
		predictions:    predict.NewCoordinator(provider, ldg, ids.DeviceID, logger, recorder),
		teams:          teams.NewService(db, provider, logger),
		scheduler:      poll.New(logger, recorder),
		loc:            loc,
		now:            time.Now,
	}
	return a, nil
}

// Run starts the polling loops and blocks until ctx is cancelled, then
// shuts everything down.
func (a *App) Run(ctx context.Context) {
	a.startMetricsServer()

	a.predictions.Hydrate(ctx)

	a.scoresSub = a.scheduler.Subscribe("scores", a.cfg.ScoresInterval, a.refreshScores, nil)
	a.scoresSub.Start(ctx)

	logging.Info(a.logger, "sync layer running",
		logging.FieldDeviceID, a.identity.DeviceID(),
		logging.FieldMode, string(a.Mode()),
	)

	<-ctx.Done()
	logging.Info(a.logger, "shutdown signal received")
	a.shutdown()
}

// Scoreboard exposes the live snapshot for UI surfaces.
func (a *App) Scoreboard() *store.Scoreboard { return a.scoreboard }

// Predictions exposes the vote coordinator.
func (a *App) Predictions() *predict.Coordinator { return a.predictions }

// Teams exposes the follow and search service.
func (a *App) Teams() *teams.Service { return a.teams }

// DeviceID returns the stable device identity.
func (a *App) DeviceID() string { return a.identity.DeviceID() }

// Mode classifies the current moment into a default view mode.
func (a *App) Mode() viewmode.Mode { return viewmode.Classify(a.now().In(a.loc)) }

// OpenChat joins the chat room for a game and starts its poll loop.
// The returned subscription tears itself down once the room closes;
// callers cancel it when the user leaves the room.
func (a *App) OpenChat(ctx context.Context, gameID string) (*chat.Channel, *poll.Subscription, error) {
	ch := chat.NewChannel(a.provider, gameID, a.identity.DeviceID(), a.logger)
	if err := ch.Join(ctx); err != nil {
		return nil, nil, err
	}

	sub := a.scheduler.Subscribe("chat:"+gameID, a.cfg.ChatInterval, ch.Refresh, ch.Alive)
	sub.Start(ctx)
	return ch, sub, nil
}

func (a *App) refreshScores(ctx context.Context) error {
	start := a.now()
	games, err := a.scores.FetchGames(ctx, "")
	a.metrics.RecordFetch(a.cfg.Provider, a.now().Sub(start), err)
	if err != nil {
		return err
	}

	a.scoreboard.SetGames(games)
	logging.Info(a.logger, "scoreboard refreshed",
		logging.FieldSource, a.cfg.Provider,
		logging.FieldCount, len(games),
		logging.FieldMode, string(a.Mode()),
		"live", a.scoreboard.HasLive(),
		"date_groups", len(a.scoreboard.UpcomingByDate()),
	)
	return nil
}

func (a *App) startMetricsServer() {
	if a.metricsHandler == nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metricsHandler)
	a.metricsServer = &http.Server{Addr: ":" + a.cfg.Metrics.Port, Handler: mux}

	logging.Info(a.logger, "metrics server starting", "addr", a.metricsServer.Addr)
	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error(a.logger, "metrics server failed", err)
		}
	}()
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.scoresSub != nil {
		a.scoresSub.Cancel()
		select {
		case <-a.scoresSub.Done():
		case <-ctx.Done():
		}
	}
	if a.metricsServer != nil {
		_ = a.metricsServer.Shutdown(ctx)
	}
	if a.metricsStop != nil {
		_ = a.metricsStop(ctx)
	}
	if err := a.db.Close(); err != nil {
		logging.Error(a.logger, "storage close failed", err)
	}
}

func buildProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "statiq":
		logging.Info(logger, "using statiq provider", "base_url", cfg.BaseURL)
		return statiq.NewClient(statiq.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey})
	default:
		logging.Info(logger, "using fixture provider")
		return fixture.New()
	}
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
