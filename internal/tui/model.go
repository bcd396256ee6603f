package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/session"
)

const defaultAlertTimeout = 3 * time.Second

type gameManager interface {
	Session() *session.Session
	PressCell(ctx context.Context, row, col int) (entity.Outcome, error)
	Reset(ctx context.Context) error
}

type Options struct {
	// AlertTimeout is how long an outcome alert stays up before it is dismissed.
	AlertTimeout time.Duration
	// AlertSticky disables the timeout; alerts wait for a key.
	AlertSticky bool
	Clock       quartz.Clock
}

// alertExpiredMsg fires once the timeout of the alert with the same seq has passed.
type alertExpiredMsg struct {
	seq int
}

type alert struct {
	seq    int
	text   string
	player entity.Mark
}

// Model is the Bubble Tea model rendering one game session.
type Model struct {
	ctx     context.Context
	logger  *slog.Logger
	manager gameManager
	clock   quartz.Clock

	alertTimeout time.Duration
	alertSticky  bool

	keys keyMap
	help help.Model

	cursorRow int
	cursorCol int

	alert    *alert
	alertSeq int
	raised   bool

	lastErr  error
	quitting bool

	width  int
	height int
}

func New(ctx context.Context, logger *slog.Logger, manager gameManager, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	if opts.AlertTimeout <= 0 {
		opts.AlertTimeout = defaultAlertTimeout
	}

	m := &Model{
		ctx:     ctx,
		logger:  logger.With("component", "tui"),
		manager: manager,
		clock:   opts.Clock,

		alertTimeout: opts.AlertTimeout,
		alertSticky:  opts.AlertSticky,

		keys: defaultKeyMap(),
		help: help.New(),

		cursorRow: 1,
		cursorCol: 1,
	}

	manager.Session().Subscribe(m.onEvent)

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case alertExpiredMsg:
		if m.alert != nil && m.alert.seq == msg.seq {
			m.logger.Debug("alert expired", "seq", msg.seq)
			m.alert = nil
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}

	// an alert is modal: the key that dismisses it does nothing else
	if m.alert != nil {
		m.alert = nil
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursorRow = clamp(m.cursorRow - 1)
	case key.Matches(msg, m.keys.Down):
		m.cursorRow = clamp(m.cursorRow + 1)
	case key.Matches(msg, m.keys.Left):
		m.cursorCol = clamp(m.cursorCol - 1)
	case key.Matches(msg, m.keys.Right):
		m.cursorCol = clamp(m.cursorCol + 1)
	case key.Matches(msg, m.keys.Press):
		return m.press(m.cursorRow, m.cursorCol)
	case key.Matches(msg, m.keys.Cell):
		n := int(msg.String()[0] - '1')
		m.cursorRow, m.cursorCol = n/entity.BoardSize, n%entity.BoardSize
		return m.press(m.cursorRow, m.cursorCol)
	case key.Matches(msg, m.keys.Reset):
		m.lastErr = nil
		if err := m.manager.Reset(m.ctx); err != nil {
			m.logger.Error("failed to reset board", "error", err)
			m.lastErr = err
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return nil
}

func (m *Model) press(row, col int) tea.Cmd {
	m.lastErr = nil

	if _, err := m.manager.PressCell(m.ctx, row, col); err != nil {
		m.logger.Error("failed to press cell", "row", row, "col", col, "error", err)
		m.lastErr = err
	}

	if !m.raised {
		return nil
	}
	m.raised = false

	if m.alertSticky {
		return nil
	}

	return m.expireAlert(m.alert.seq)
}

// expireAlert - the timer starts now; the returned command waits for it.
func (m *Model) expireAlert(seq int) tea.Cmd {
	timer := m.clock.NewTimer(m.alertTimeout, "alert")

	return func() tea.Msg {
		<-timer.C
		return alertExpiredMsg{seq: seq}
	}
}

// onEvent - session observer; raises an alert for every finished game.
func (m *Model) onEvent(event session.Event) {
	var text string

	switch event.Kind {
	case session.EventWin:
		text = fmt.Sprintf("Player %s Wins!", event.Outcome.Winner)
	case session.EventDraw:
		text = "It's a Draw!"
	default:
		return
	}

	m.alertSeq++
	m.alert = &alert{
		seq:    m.alertSeq,
		text:   text,
		player: event.Outcome.Winner,
	}
	m.raised = true
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	gameSession := m.manager.Session()

	sections := []string{
		HeaderStyle.Render("Tic-Tac-Toe"),
		m.turnView(gameSession.Turn()),
		boardStyle(gameSession.Turn()).Render(m.boardView(gameSession.Board())),
	}

	if m.alert != nil {
		style := AlertStyle.BorderForeground(playerColor(m.alert.player))
		sections = append(sections, style.Render(m.alert.text+"\n"+InfoStyle.Render("press any key")))
	}

	if m.lastErr != nil {
		sections = append(sections, ErrorStyle.Render(m.lastErr.Error()))
	}

	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m *Model) turnView(turn entity.Mark) string {
	players := make([]string, 0, 2)

	for _, player := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		style := TurnStyle
		if player == turn {
			style = style.Foreground(playerColor(player)).Bold(true).Underline(true)
		}
		players = append(players, style.Render(string(player)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, players...)
}

func (m *Model) boardView(board entity.Board) string {
	rows := make([]string, 0, entity.BoardSize)

	for r, row := range board {
		cells := make([]string, 0, entity.BoardSize)
		for c, mark := range row {
			style := CellStyle
			if r == m.cursorRow && c == m.cursorCol {
				style = CursorStyle
			}
			cells = append(cells, style.Foreground(playerColor(mark)).Render(string(mark)))
		}
		rows = append(rows, strings.Join(cells, "│"))
	}

	separator := strings.Repeat("─", 3) + "┼" + strings.Repeat("─", 3) + "┼" + strings.Repeat("─", 3)

	return strings.Join(rows, "\n"+separator+"\n")
}

func (m *Model) cursor() (int, int) {
	return m.cursorRow, m.cursorCol
}

// alertText - text of the alert on screen, empty if none.
func (m *Model) alertText() string {
	if m.alert == nil {
		return ""
	}
	return m.alert.text
}

func clamp(i int) int {
	return max(0, min(entity.BoardSize-1, i))
}
