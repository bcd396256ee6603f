package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// ValidateMove - checks that (row, col) is on the board. An occupied cell is not an error.
func ValidateMove(row, col int) error {
	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	return nil
}

// Evaluate - derives the outcome from the board and the cell played last.
// Only the lines through (row, col) are inspected.
func Evaluate(board *entity.Board, row, col int) entity.Outcome {
	if !entity.InBounds(row, col) {
		return entity.InProgress()
	}

	player := board[row][col]
	if player == entity.EmptyCell {
		return entity.InProgress()
	}

	if IsWinningMove(board, row, col) {
		return entity.Win(player)
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// IsWinningMove - reports whether the mark at (row, col) completes its row, column or a diagonal it lies on.
func IsWinningMove(board *entity.Board, row, col int) bool {
	player := board[row][col]
	if player == entity.EmptyCell {
		return false
	}

	last := entity.BoardSize - 1

	if lineOf(board, player, func(i int) (int, int) { return row, i }) {
		return true
	}

	if lineOf(board, player, func(i int) (int, int) { return i, col }) {
		return true
	}

	if row == col && lineOf(board, player, func(i int) (int, int) { return i, i }) {
		return true
	}

	if row+col == last && lineOf(board, player, func(i int) (int, int) { return i, last - i }) {
		return true
	}

	return false
}

// IsTerminal - reports whether the board is full or already holds a completed line.
func IsTerminal(board *entity.Board) bool {
	if board.IsFull() {
		return true
	}

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if IsWinningMove(board, row, col) {
				return true
			}
		}
	}

	return false
}

func lineOf(board *entity.Board, player entity.Mark, cell func(i int) (int, int)) bool {
	for i := range entity.BoardSize {
		r, c := cell(i)
		if board[r][c] != player {
			return false
		}
	}

	return true
}
