package entity

// Snapshot is the stored form of a session: the board and the player holding the turn.
type Snapshot struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
	Turn  Mark   `json:"player_turn"`
}

// Valid reports whether every cell holds a known mark and the turn belongs to a player.
func (that *Snapshot) Valid() bool {
	if !that.Turn.IsPlayer() {
		return false
	}

	for _, row := range that.Board {
		for _, cell := range row {
			if cell != EmptyCell && !cell.IsPlayer() {
				return false
			}
		}
	}

	return true
}
