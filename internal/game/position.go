package game

// Position addresses a board cell by row and column. Row 0 is the top row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the position shifted by the given row and column offsets.
func (that Position) Add(dRow, dCol int) Position {
	return Position{Row: that.Row + dRow, Col: that.Col + dCol}
}

// In reports whether the position lies on a rows x cols board.
func (that Position) In(rows, cols int) bool {
	return that.Row >= 0 && that.Row < rows && that.Col >= 0 && that.Col < cols
}
