// Package session holds the state of a single tic-tac-toe game: the board, the player
// to move, and the observers interested in its changes.
//
// A Session is not safe for concurrent use. It is meant to be driven from one event loop.
package session

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type EventKind int

const (
	// EventMoved - a move was placed and the turn passed to the opponent.
	EventMoved EventKind = iota
	// EventWin - a move completed a line; the board has been cleared.
	EventWin
	// EventDraw - a move filled the board without a line; the board has been cleared.
	EventDraw
	// EventReset - the board was cleared on request.
	EventReset
)

func (that EventKind) String() string {
	switch that {
	case EventMoved:
		return "moved"
	case EventWin:
		return "win"
	case EventDraw:
		return "draw"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(that))
	}
}

// Event describes one state change. Row, Col and Player are set for move events.
type Event struct {
	Kind    EventKind
	Player  entity.Mark
	Row     int
	Col     int
	Outcome entity.Outcome
}

type Observer func(Event)

type move struct {
	row, col int
}

type Session struct {
	board entity.Board
	turn  entity.Mark
	last  *move

	observers map[int]Observer
	order     []int
	nextID    int
}

// New - creates a session with an empty board and O to move.
func New() *Session {
	return &Session{
		turn:      entity.FirstPlayer,
		observers: make(map[int]Observer),
	}
}

func (that *Session) Board() entity.Board {
	return that.board
}

func (that *Session) Turn() entity.Mark {
	return that.turn
}

// Outcome - derives the outcome of the current board from the last move placed on it.
func (that *Session) Outcome() entity.Outcome {
	if that.last == nil {
		return entity.InProgress()
	}

	return tictactoe.Evaluate(&that.board, that.last.row, that.last.col)
}

// ApplyMove - places the current player's mark at (row, col).
// Pressing an occupied cell changes nothing and is not an error.
func (that *Session) ApplyMove(row, col int) (entity.Outcome, error) {
	if err := tictactoe.ValidateMove(row, col); err != nil {
		return entity.InProgress(), fmt.Errorf("invalid move: %w", err)
	}

	if that.board[row][col] != entity.EmptyCell {
		return entity.InProgress(), nil
	}

	player := that.turn
	that.board[row][col] = player
	that.last = &move{row: row, col: col}

	outcome := that.Outcome()
	event := Event{Player: player, Row: row, Col: col, Outcome: outcome}

	switch outcome.State {
	case entity.StateWin:
		event.Kind = EventWin
		that.clear()
	case entity.StateDraw:
		event.Kind = EventDraw
		that.clear()
	default:
		event.Kind = EventMoved
		that.turn = player.Opponent()
	}

	that.notify(event)

	return outcome, nil
}

// Reset - clears the board. The turn is kept.
func (that *Session) Reset() {
	that.clear()
	that.notify(Event{Kind: EventReset, Outcome: entity.InProgress()})
}

// Restore - replaces the board and turn with a stored snapshot without notifying observers.
// A finished board is rejected: it would leave no playable cell.
func (that *Session) Restore(snapshot *entity.Snapshot) error {
	if snapshot == nil || !snapshot.Valid() || tictactoe.IsTerminal(&snapshot.Board) {
		return apperror.ErrInvalidSnapshot
	}

	that.board = snapshot.Board
	that.turn = snapshot.Turn
	that.last = nil

	return nil
}

// Snapshot - returns the stored form of the session under the given id.
func (that *Session) Snapshot(id string) *entity.Snapshot {
	return &entity.Snapshot{
		ID:    id,
		Board: that.board,
		Turn:  that.turn,
	}
}

// Subscribe - registers an observer called synchronously after every state change,
// in registration order. The returned function removes it.
func (that *Session) Subscribe(observer Observer) func() {
	id := that.nextID
	that.nextID++

	that.observers[id] = observer
	that.order = append(that.order, id)

	return func() {
		if _, ok := that.observers[id]; !ok {
			return
		}

		delete(that.observers, id)
		for i, existing := range that.order {
			if existing == id {
				that.order = append(that.order[:i], that.order[i+1:]...)
				break
			}
		}
	}
}

func (that *Session) clear() {
	that.board.Clear()
	that.last = nil
}

func (that *Session) notify(event Event) {
	for _, id := range append([]int(nil), that.order...) {
		if observer, ok := that.observers[id]; ok {
			observer(event)
		}
	}
}
