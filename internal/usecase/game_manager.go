package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/session"
)

type sessionRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
}

// GameManager drives one session on behalf of the view and keeps its snapshot stored.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	session   *session.Session
	sessionID string

	changed bool
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, gameSession *session.Session, sessionID string) *GameManager {
	manager := &GameManager{
		logger:      logger.With("component", "game_manager", "sessionID", sessionID),
		sessionRepo: sessionRepo,

		session:   gameSession,
		sessionID: sessionID,
	}

	gameSession.Subscribe(manager.onEvent)

	return manager
}

func (that *GameManager) Session() *session.Session {
	return that.session
}

// Restore - loads the stored snapshot into the session. A missing snapshot leaves a fresh session.
func (that *GameManager) Restore(ctx context.Context) error {
	log := that.logger.With("method", "Restore")

	snapshot, err := that.sessionRepo.GetByID(ctx, that.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		log.Info("no stored session, starting fresh")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err = that.session.Restore(snapshot); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	log.Info("session restored", "turn", snapshot.Turn)

	return nil
}

// PressCell - applies the current player's move at (row, col) and stores the result.
func (that *GameManager) PressCell(ctx context.Context, row, col int) (entity.Outcome, error) {
	outcome, err := that.session.ApplyMove(row, col)
	if err != nil {
		return outcome, fmt.Errorf("failed to press cell: %w", err)
	}

	if err = that.saveIfChanged(ctx); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// Reset - clears the board and stores the result.
func (that *GameManager) Reset(ctx context.Context) error {
	that.session.Reset()

	return that.saveIfChanged(ctx)
}

func (that *GameManager) saveIfChanged(ctx context.Context) error {
	if !that.changed {
		return nil
	}
	that.changed = false

	if err := that.sessionRepo.Save(ctx, that.session.Snapshot(that.sessionID)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *GameManager) onEvent(event session.Event) {
	that.changed = true

	log := that.logger.With("event", event.Kind.String())

	switch event.Kind {
	case session.EventMoved:
		log.Debug("move applied", "player", event.Player, "row", event.Row, "col", event.Col)
	case session.EventWin:
		log.Info("player wins", "player", event.Outcome.Winner, "row", event.Row, "col", event.Col)
	case session.EventDraw:
		log.Info("game is a draw")
	case session.EventReset:
		log.Info("board reset")
	}
}
