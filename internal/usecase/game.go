package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type GameUseCase interface {
	NewGame(ctx context.Context) (*view.Game, error)
	GetGame(ctx context.Context, id string) (*view.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, cell int) (*view.Game, error)
	JumpTo(ctx context.Context, id string, step int) (*view.Game, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	newID func() string
	now   func() time.Time

	// one transition at a time: load, apply, save
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context) (*view.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.newID()
	history := tictactoe.NewHistory()

	if err := that.save(ctx, id, history); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", id)

	return view.Project(id, history), nil
}

func (that *gameUseCase) GetGame(ctx context.Context, id string) (*view.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	history, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return view.Project(id, history), nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// MakeMove applies a move to the game. A rejected move returns the unchanged
// game together with the reason.
func (that *gameUseCase) MakeMove(ctx context.Context, id string, cell int) (*view.Game, error) {
	return that.transition(ctx, id, "make move", func(history *tictactoe.History) error {
		return history.ApplyMove(cell)
	})
}

// JumpTo moves the game's cursor to step.
func (that *gameUseCase) JumpTo(ctx context.Context, id string, step int) (*view.Game, error) {
	return that.transition(ctx, id, "jump to step", func(history *tictactoe.History) error {
		return history.JumpTo(step)
	})
}

func (that *gameUseCase) transition(ctx context.Context, id, action string, apply func(*tictactoe.History) error) (*view.Game, error) {
	log := that.logger.With("action", action, "gameID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	history, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(history); err != nil {
		log.Debug("input rejected", "error", err)
		return view.Project(id, history), fmt.Errorf("failed to %s: %w", action, err)
	}

	if err = that.save(ctx, id, history); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("game updated", "step", history.Step(), "state", history.Status().State, "board", history.CurrentBoard().String())

	return view.Project(id, history), nil
}

func (that *gameUseCase) load(ctx context.Context, id string) (*tictactoe.History, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	history, err := tictactoe.FromSession(session)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", id, err)
	}

	return history, nil
}

func (that *gameUseCase) save(ctx context.Context, id string, history *tictactoe.History) error {
	session := history.Session(id)
	session.UpdatedAt = that.now()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}
