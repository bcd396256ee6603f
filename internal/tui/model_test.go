package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

var errStorageIsFull = errors.New("storage is full")

type failingRepo struct{}

func (failingRepo) Save(context.Context, *entity.Snapshot) error {
	return errStorageIsFull
}

func (failingRepo) GetByID(context.Context, string) (*entity.Snapshot, error) {
	return nil, errStorageIsFull
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newModel(t *testing.T, opts Options) (*Model, *usecase.GameManager) {
	t.Helper()

	manager := usecase.NewGameManager(quietLogger(), repository.NewMemorySessionRepository(), session.New(), "test")

	return New(context.Background(), quietLogger(), manager, opts), manager
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers keys in order and returns the command produced by the last one.
func send(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

// rowWinForO plays O:(0,0), X:(1,1), O:(0,1), X:(2,2), O:(0,2).
func rowWinForO() []tea.KeyMsg {
	return []tea.KeyMsg{keyRunes("1"), keyRunes("5"), keyRunes("2"), keyRunes("9"), keyRunes("3")}
}

func TestModel_Cursor(t *testing.T) {
	t.Run("Starts in the center", func(t *testing.T) {
		m, _ := newModel(t, Options{})

		row, col := m.cursor()
		assert.Equal(t, 1, row)
		assert.Equal(t, 1, col)
	})

	t.Run("Moves with arrows and vim keys and stays on the board", func(t *testing.T) {
		m, _ := newModel(t, Options{})

		send(m, tea.KeyMsg{Type: tea.KeyUp}, keyRunes("k"), keyRunes("k"))
		row, col := m.cursor()
		assert.Equal(t, 0, row)
		assert.Equal(t, 1, col)

		send(m, tea.KeyMsg{Type: tea.KeyRight}, keyRunes("l"), tea.KeyMsg{Type: tea.KeyDown})
		row, col = m.cursor()
		assert.Equal(t, 1, row)
		assert.Equal(t, 2, col)

		send(m, keyRunes("h"), tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, keyRunes("j"), keyRunes("j"))
		row, col = m.cursor()
		assert.Equal(t, 2, row)
		assert.Equal(t, 0, col)
	})
}

func TestModel_Press(t *testing.T) {
	t.Run("Enter plays the cell under the cursor", func(t *testing.T) {
		// Given: a fresh model with the cursor in the center
		m, manager := newModel(t, Options{})

		// When: enter is pressed
		cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})

		// Then: O occupies the center and X holds the turn
		assert.Nil(t, cmd)
		board := manager.Session().Board()
		assert.Equal(t, entity.PlayerO, board[1][1])
		assert.Equal(t, entity.PlayerX, manager.Session().Turn())
	})

	t.Run("Space plays the cell under the cursor", func(t *testing.T) {
		m, manager := newModel(t, Options{})

		send(m, tea.KeyMsg{Type: tea.KeySpace})

		board := manager.Session().Board()
		assert.Equal(t, entity.PlayerO, board[1][1])
	})

	t.Run("Digits play cells in row-major order and move the cursor", func(t *testing.T) {
		m, manager := newModel(t, Options{})

		send(m, keyRunes("7"))

		board := manager.Session().Board()
		assert.Equal(t, entity.PlayerO, board[2][0])

		row, col := m.cursor()
		assert.Equal(t, 2, row)
		assert.Equal(t, 0, col)
	})

	t.Run("Pressing an occupied cell changes nothing", func(t *testing.T) {
		m, manager := newModel(t, Options{})

		send(m, keyRunes("1"))
		before := manager.Session().Board()

		send(m, keyRunes("1"))

		assert.Equal(t, before, manager.Session().Board())
		assert.Equal(t, entity.PlayerX, manager.Session().Turn())
		assert.Empty(t, m.alertText())
	})

	t.Run("Storage errors are shown", func(t *testing.T) {
		manager := usecase.NewGameManager(quietLogger(), failingRepo{}, session.New(), "test")
		m := New(context.Background(), quietLogger(), manager, Options{})

		send(m, keyRunes("5"))

		assert.Contains(t, m.View(), "storage is full")
	})
}

func TestModel_Reset(t *testing.T) {
	// Given: O has played the center
	m, manager := newModel(t, Options{})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	// When: r is pressed
	send(m, keyRunes("r"))

	// Then: the board is empty and the turn is kept
	assert.Equal(t, entity.Board{}, manager.Session().Board())
	assert.Equal(t, entity.PlayerX, manager.Session().Turn())
}

func TestModel_Alert(t *testing.T) {
	ctx := context.Background()

	t.Run("Win raises an alert and clears the board", func(t *testing.T) {
		m, manager := newModel(t, Options{})

		cmd := send(m, rowWinForO()...)

		assert.NotNil(t, cmd)
		assert.Equal(t, "Player O Wins!", m.alertText())
		assert.Contains(t, m.View(), "Player O Wins!")
		assert.Equal(t, entity.Board{}, manager.Session().Board())
	})

	t.Run("Draw raises an alert", func(t *testing.T) {
		m, _ := newModel(t, Options{})

		// O X O / O X X / X O O
		send(m,
			keyRunes("1"), keyRunes("2"), keyRunes("3"), keyRunes("5"), keyRunes("8"),
			keyRunes("6"), keyRunes("4"), keyRunes("7"), keyRunes("9"),
		)

		assert.Equal(t, "It's a Draw!", m.alertText())
	})

	t.Run("A key dismisses the alert without playing", func(t *testing.T) {
		m, manager := newModel(t, Options{})
		send(m, rowWinForO()...)

		send(m, keyRunes("5"))

		assert.Empty(t, m.alertText())
		assert.Equal(t, entity.Board{}, manager.Session().Board())

		// And: the next key plays again
		send(m, keyRunes("5"))
		board := manager.Session().Board()
		assert.Equal(t, entity.PlayerO, board[1][1])
	})

	t.Run("Alert expires when the clock reaches the timeout", func(t *testing.T) {
		// Given: a win with a two second alert timeout
		mockClock := quartz.NewMock(t)
		m, _ := newModel(t, Options{AlertTimeout: 2 * time.Second, Clock: mockClock})

		cmd := send(m, rowWinForO()...)
		require.NotNil(t, cmd)

		expired := make(chan tea.Msg, 1)
		go func() { expired <- cmd() }()

		// When: half the timeout passes
		mockClock.Advance(time.Second).MustWait(ctx)

		// Then: no expiry is delivered
		select {
		case msg := <-expired:
			t.Fatalf("alert expired early: %v", msg)
		default:
		}

		// When: the rest of the timeout passes
		mockClock.Advance(time.Second).MustWait(ctx)

		// Then: the command produces the expiry and it dismisses the alert
		var msg tea.Msg
		select {
		case msg = <-expired:
		case <-time.After(time.Second):
			t.Fatal("alert expiry was not delivered")
		}

		assert.Equal(t, alertExpiredMsg{seq: 1}, msg)
		require.Equal(t, "Player O Wins!", m.alertText())

		m.Update(msg)
		assert.Empty(t, m.alertText())
	})

	t.Run("Stale expiry does not dismiss a newer alert", func(t *testing.T) {
		mockClock := quartz.NewMock(t)
		m, _ := newModel(t, Options{AlertTimeout: time.Second, Clock: mockClock})

		// Given: a first alert dismissed by a key, then a second win
		first := send(m, rowWinForO()...)
		send(m, keyRunes("x"))
		require.Empty(t, m.alertText())

		second := send(m, rowWinForO()...)
		require.Equal(t, "Player O Wins!", m.alertText())

		// When: both timers fire and the first alert's expiry arrives
		mockClock.Advance(time.Second).MustWait(ctx)
		m.Update(first())

		// Then: the second alert stays
		assert.Equal(t, "Player O Wins!", m.alertText())

		// And: its own expiry dismisses it
		m.Update(second())
		assert.Empty(t, m.alertText())
	})

	t.Run("Sticky alerts do not schedule an expiry", func(t *testing.T) {
		m, _ := newModel(t, Options{AlertSticky: true})

		cmd := send(m, rowWinForO()...)

		assert.Nil(t, cmd)
		assert.Equal(t, "Player O Wins!", m.alertText())
	})
}

func TestModel_View(t *testing.T) {
	m, _ := newModel(t, Options{})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()

	assert.Contains(t, view, "Tic-Tac-Toe")
	assert.Contains(t, view, "O")
	assert.Contains(t, view, "reset board")
}

func TestModel_Quit(t *testing.T) {
	t.Run("q quits", func(t *testing.T) {
		m, _ := newModel(t, Options{})

		cmd := send(m, keyRunes("q"))

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})

	t.Run("ctrl+c quits even with an alert shown", func(t *testing.T) {
		m, _ := newModel(t, Options{AlertSticky: true})
		send(m, rowWinForO()...)

		cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})
}
