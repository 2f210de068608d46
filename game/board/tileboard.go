package board

// Tile pairs a color with a stable index assigned at construction. The
// index never changes across slides, which lets a renderer animate the same
// tile continuously as it moves around the grid.
type Tile struct {
	Index int   `json:"index"`
	Color Color `json:"color"`
}

// TileCell is one slot of a TileBoard.
type TileCell struct {
	Tile     Tile `json:"tile"`
	Occupied bool `json:"occupied"`
}

// TileBoard is the client-side view of a board: the same grid and slide
// rules as Board, plus per-tile identity and a reverse index from tile to
// position.
type TileBoard struct {
	Cells     [Size][Size]TileCell
	Hole      Position
	Locations [NumTiles]Position
}

// NewTileBoard builds the identity-tracking view from a color-only grid as
// received in a game-start message. Tiles are numbered in row-major order
// and the hole is located by scanning for the empty cell.
func NewTileBoard(g Grid) *TileBoard {
	tb := &TileBoard{}
	idx := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			cell := g[i][j]
			if !cell.Occupied {
				tb.Hole = Position{i, j}
				continue
			}
			if idx == NumTiles {
				// overfull grid; the server is authoritative, just stop
				break
			}
			tb.Cells[i][j] = TileCell{Tile: Tile{Index: idx, Color: cell.Color}, Occupied: true}
			tb.Locations[idx] = Position{i, j}
			idx++
		}
	}
	return tb
}

// AttemptSlide applies a click the same way Board.AttemptSlide does, and
// additionally keeps the tile location index in sync.
func (tb *TileBoard) AttemptSlide(pos Position) bool {
	moved := slide(pos, tb.Hole, func(from, to Position) {
		cell := tb.Cells[from.Row][from.Col]
		tb.Locations[cell.Tile.Index] = to
		tb.Cells[to.Row][to.Col] = cell
	})
	if !moved {
		return false
	}
	tb.Cells[pos.Row][pos.Col] = TileCell{}
	tb.Hole = pos
	return true
}

// MatchesTarget reports whether the center 3x3 shows the target pattern.
func (tb *TileBoard) MatchesTarget(t Target) bool {
	for i := 0; i < TargetSize; i++ {
		for j := 0; j < TargetSize; j++ {
			cell := tb.Cells[i+1][j+1]
			if !cell.Occupied || cell.Tile.Color != t[i][j] {
				return false
			}
		}
	}
	return true
}
