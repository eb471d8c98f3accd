// Package app contains the main entrypoint for the server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starquake/quizgame/cmd/server/health"
	"github.com/starquake/quizgame/internal/config"
	"github.com/starquake/quizgame/internal/db"
	"github.com/starquake/quizgame/internal/game"
	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/seed"
	"github.com/starquake/quizgame/internal/server"
	"github.com/starquake/quizgame/internal/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second

	minJanitorInterval = time.Second
)

// Run connects to the database, runs migrations, seeds an empty question store and serves the quiz on ln until ctx
// is canceled or the process is interrupted. Run takes ownership of ln.
func Run(
	ctx context.Context,
	getenv func(string) string,
	stdout io.Writer,
	ln net.Listener,
) error {
	var err error
	mainCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Serve closes ln too; the second Close only reports that it is already closed.
	defer func() { _ = ln.Close() }()

	logger := logging.New(stdout, getenv("APP_ENV") == config.AppEnvironmentProduction)

	var cfg *config.Config
	if cfg, err = config.Parse(getenv); err != nil {
		msg := "error parsing config"
		logger.ErrorContext(ctx, msg, logging.ErrAttr(err))

		return fmt.Errorf("%s: %w", msg, err)
	}

	conn, err := db.Open(mainCtx, cfg.DBDriver, cfg.DBURI, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("error opening database connection: %w", err)
	}
	defer func() {
		conErr := conn.Close()
		if conErr != nil {
			logger.ErrorContext(ctx, "error closing database connection", logging.ErrAttr(conErr))
		}
	}()

	if err = db.Migrate(mainCtx, conn, cfg.DBDriver); err != nil {
		msg := "error migrating database"
		logger.ErrorContext(ctx, msg, logging.ErrAttr(err))

		return fmt.Errorf("%s: %w", msg, err)
	}

	stores := store.New(conn, logger)

	if cfg.SeedOnEmpty {
		if _, err = seed.IfEmpty(mainCtx, stores.Questions, cfg.SeedFile, logger); err != nil {
			msg := "error seeding questions"
			logger.ErrorContext(ctx, msg, logging.ErrAttr(err))

			return fmt.Errorf("%s: %w", msg, err)
		}
	}

	service := game.NewService(stores.Questions, stores.HighScores, logger, cfg.LeaderboardSize)
	manager := game.NewManager(cfg.SessionTTL)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", health.HandleHealthz(logger, stores))
	mux.Handle("/", server.NewServer(logger, cfg, service, manager))

	httpServer := &http.Server{
		ReadHeaderTimeout: readHeaderTimeout,
		Handler:           mux,
	}

	g, gctx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		logger.InfoContext(ctx, "listening on "+ln.Addr().String(), slog.String("addr", ln.Addr().String()))
		logger.InfoContext(ctx, fmt.Sprintf("visit http://%s/ to play", ln.Addr().String()))
		if serveErr := httpServer.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("error listening and serving: %w", serveErr)
		}

		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// make a new context for the Shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer shutdownCancel()
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("error shutting down server: %w", shutdownErr)
		}

		return nil
	})
	g.Go(func() error {
		return manager.Janitor(gctx, logger, max(cfg.SessionTTL/2, minJanitorInterval))
	})

	if err = g.Wait(); err != nil {
		logger.ErrorContext(ctx, "server stopped with error", logging.ErrAttr(err))

		return err
	}
	logger.InfoContext(ctx, "server stopped")

	return nil
}
