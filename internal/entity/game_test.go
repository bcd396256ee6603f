package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	t.Run("Opponent toggles between players", func(t *testing.T) {
		assert.Equal(t, PlayerX, PlayerO.Opponent())
		assert.Equal(t, PlayerO, PlayerX.Opponent())
	})

	t.Run("IsPlayer accepts only X and O", func(t *testing.T) {
		assert.True(t, PlayerX.IsPlayer())
		assert.True(t, PlayerO.IsPlayer())
		assert.False(t, EmptyCell.IsPlayer())
		assert.False(t, Mark("-").IsPlayer())
	})
}

func TestBoard(t *testing.T) {
	t.Run("IsFull returns false while any cell is empty", func(t *testing.T) {
		// Given: a board with one empty cell
		board := Board{
			{PlayerO, PlayerX, PlayerO},
			{PlayerX, PlayerO, PlayerX},
			{PlayerX, PlayerO, EmptyCell},
		}

		// Then: the board is not full
		assert.False(t, board.IsFull())
	})

	t.Run("IsFull returns true when every cell is occupied", func(t *testing.T) {
		board := Board{
			{PlayerO, PlayerX, PlayerO},
			{PlayerX, PlayerO, PlayerX},
			{PlayerX, PlayerO, PlayerX},
		}

		assert.True(t, board.IsFull())
	})

	t.Run("Clear empties every cell", func(t *testing.T) {
		// Given: a partially filled board
		board := Board{{PlayerO}, {EmptyCell, PlayerX}}

		// When: clearing it
		board.Clear()

		// Then: it should be empty
		assert.True(t, board.IsEmpty())
		assert.Equal(t, Board{}, board)
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(2, 2))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 3))
	assert.False(t, InBounds(3, 1))
}

func TestOutcome(t *testing.T) {
	assert.False(t, InProgress().IsTerminal())
	assert.True(t, Win(PlayerO).IsTerminal())
	assert.True(t, Draw().IsTerminal())
	assert.Equal(t, PlayerX, Win(PlayerX).Winner)
}

func TestSnapshot_Valid(t *testing.T) {
	t.Run("Accepts a board of known marks", func(t *testing.T) {
		snapshot := &Snapshot{
			ID:    "local",
			Board: Board{{PlayerO, PlayerX}},
			Turn:  PlayerO,
		}

		assert.True(t, snapshot.Valid())
	})

	t.Run("Rejects an empty turn", func(t *testing.T) {
		snapshot := &Snapshot{ID: "local"}

		assert.False(t, snapshot.Valid())
	})

	t.Run("Rejects unknown marks on the board", func(t *testing.T) {
		snapshot := &Snapshot{
			ID:    "local",
			Board: Board{{"-"}},
			Turn:  PlayerX,
		}

		assert.False(t, snapshot.Valid())
	})
}
