package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tui"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close session storage", "error", closeErr)
		}
	}()

	gameManager := usecase.NewGameManager(logger, sessionRepo, session.New(), conf.SessionID)
	if err = gameManager.Restore(ctx); err != nil {
		return fmt.Errorf("could not restore session: %w", err)
	}

	tui.ApplyColorProfile(conf.UI.NoColor)
	model := tui.New(ctx, logger, gameManager, tui.Options{
		AlertTimeout: conf.UI.AlertTimeout,
		AlertSticky:  conf.UI.AlertSticky,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer cancel()

		log.Info("Starting game session", "sessionID", conf.SessionID, "storage", conf.Storage.Driver)
		if _, runErr := program.Run(); runErr != nil {
			return fmt.Errorf("tui error: %w", runErr)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		program.Quit()

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Game session closed")

	return nil
}

// newSessionRepository - picks the snapshot store named by the config. The returned func releases it.
func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage.Connection), redisStorage.Close, nil
	default:
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil
	}
}
