package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 3

// FirstPlayer occupies the first cell of a fresh session.
const FirstPlayer = PlayerO

// Mark is the content of a single cell, or the player holding the turn.
type Mark string

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board is indexed as Board[row][col].
type Board [BoardSize][BoardSize]Mark

func (that *Board) Clear() {
	*that = Board{}
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	return *that == Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

type OutcomeState string

const (
	StateInProgress OutcomeState = "in_progress"
	StateWin        OutcomeState = "win"
	StateDraw       OutcomeState = "draw"
)

type Outcome struct {
	State  OutcomeState `json:"state"`
	Winner Mark         `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{State: StateInProgress}
}

func Win(player Mark) Outcome {
	return Outcome{State: StateWin, Winner: player}
}

func Draw() Outcome {
	return Outcome{State: StateDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.State == StateWin || that.State == StateDraw
}
