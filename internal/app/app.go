// Package app wires configuration, storage, and services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vodexapp/vodex-backend/internal/adapter/postgres"
	"github.com/vodexapp/vodex-backend/internal/adapter/postgres/cardstate"
	"github.com/vodexapp/vodex-backend/internal/adapter/postgres/practiceresult"
	"github.com/vodexapp/vodex-backend/internal/adapter/postgres/practicesession"
	"github.com/vodexapp/vodex-backend/internal/adapter/postgres/vocab"
	"github.com/vodexapp/vodex-backend/internal/config"
	"github.com/vodexapp/vodex-backend/internal/events"
	"github.com/vodexapp/vodex-backend/internal/service/gym"
	"github.com/vodexapp/vodex-backend/internal/transport/rest"
)

// App holds the initialized application graph.
type App struct {
	Cfg     *config.Config
	Log     *slog.Logger
	Gym     *gym.Service
	Emitter *events.Emitter

	pool     *pgxpool.Pool
	closeFns []func()
}

// New builds the application: loads config, connects the database pool, and
// constructs repositories, the event emitter, and the gym service.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	emitter := events.NewEmitter()
	emitter.Subscribe(events.TopicSpaceStatsChanged, func(ev events.Event) {
		logger.Debug("space stats invalidated",
			slog.String("user_id", ev.UserID.String()),
			slog.String("space_id", ev.SpaceID.String()),
		)
	})

	gymSvc, err := gym.NewService(
		logger,
		cardstate.New(pool),
		practicesession.New(pool),
		practiceresult.New(pool),
		vocab.New(pool),
		postgres.NewTxManager(pool),
		emitter,
		gym.SchedulerConfig{
			DesiredRetention: cfg.Gym.DesiredRetention,
			MaxIntervalDays:  cfg.Gym.MaxIntervalDays,
			EnableFuzz:       cfg.Gym.EnableFuzz,
			LearningSteps:    cfg.Gym.LearningSteps,
			RelearningSteps:  cfg.Gym.RelearningSteps,
		},
		cfg.Gym.Weights,
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create gym service: %w", err)
	}

	return &App{
		Cfg:      cfg,
		Log:      logger,
		Gym:      gymSvc,
		Emitter:  emitter,
		pool:     pool,
		closeFns: []func(){pool.Close},
	}, nil
}

// Close releases held resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		a.closeFns[i]()
	}
}

// Run builds the application, serves HTTP until the context is cancelled,
// and shuts the server down gracefully.
func Run(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	router := rest.NewRouter(
		rest.NewGymHandler(a.Gym, a.Log),
		rest.NewHealthHandler(a.pool, BuildVersion()),
		a.Log,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Cfg.Server.Host, a.Cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  a.Cfg.Server.ReadTimeout,
		WriteTimeout: a.Cfg.Server.WriteTimeout,
		IdleTimeout:  a.Cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.Log.Info("http server listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
