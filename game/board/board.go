package board

// Color identifies one of the six tile colors.
type Color uint8

const (
	White Color = iota
	Yellow
	Orange
	Red
	Green
	Blue

	// NumColors is the size of the Color enumeration.
	NumColors = 6
)

const (
	// Size is the board edge length.
	Size = 5
	// TargetSize is the target pattern edge length.
	TargetSize = 3
	// TilesPerColor is the fixed supply of tiles per color on every board.
	TilesPerColor = 4
	// NumTiles is the number of occupied cells on a board (all but the hole).
	NumTiles = Size*Size - 1
)

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "invalid"
	}
}

// Position is a 0-indexed board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the 5x5 grid.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Cell is one grid slot: a color when occupied, empty otherwise.
type Cell struct {
	Color    Color `json:"color"`
	Occupied bool  `json:"occupied"`
}

// Grid is the raw 5x5 cell matrix. It is the shape boards travel in over
// the wire; Board and TileBoard are views built on top of it.
type Grid [Size][Size]Cell

// Target is the 3x3 pattern a board's center must match to win.
type Target [TargetSize][TargetSize]Color

// Board is the color-only board the server plays on. Exactly one cell is
// empty and its coordinate equals Hole; every other cell holds a tile.
type Board struct {
	Grid Grid
	Hole Position
}

// slide walks the run of cells spanned by hole and pos, calling move for
// each one-step shift toward the old hole position. It returns false when
// pos shares neither the row nor the column with hole, or equals hole, and
// calls move for nothing in that case.
func slide(pos, hole Position, move func(from, to Position)) bool {
	switch {
	case pos.Row == hole.Row && pos.Col < hole.Col:
		for c := hole.Col - 1; c >= pos.Col; c-- {
			move(Position{pos.Row, c}, Position{pos.Row, c + 1})
		}
	case pos.Row == hole.Row && pos.Col > hole.Col:
		for c := hole.Col; c < pos.Col; c++ {
			move(Position{pos.Row, c + 1}, Position{pos.Row, c})
		}
	case pos.Col == hole.Col && pos.Row < hole.Row:
		for r := hole.Row - 1; r >= pos.Row; r-- {
			move(Position{r, pos.Col}, Position{r + 1, pos.Col})
		}
	case pos.Col == hole.Col && pos.Row > hole.Row:
		for r := hole.Row; r < pos.Row; r++ {
			move(Position{r + 1, pos.Col}, Position{r, pos.Col})
		}
	default:
		return false
	}
	return true
}

// AttemptSlide applies the slide a click at pos would cause. The tiles
// between the hole and pos shift one step toward the old hole, pos becomes
// the new hole. It returns false without mutating the board when pos is not
// in line with the hole or is the hole itself.
func (b *Board) AttemptSlide(pos Position) bool {
	moved := slide(pos, b.Hole, func(from, to Position) {
		b.Grid[to.Row][to.Col] = b.Grid[from.Row][from.Col]
	})
	if !moved {
		return false
	}
	b.Grid[pos.Row][pos.Col] = Cell{}
	b.Hole = pos
	return true
}

// MatchesTarget reports whether the center 3x3 of the grid shows the target
// pattern. An empty cell in the center never matches.
func (g *Grid) MatchesTarget(t Target) bool {
	for i := 0; i < TargetSize; i++ {
		for j := 0; j < TargetSize; j++ {
			cell := g[i+1][j+1]
			if !cell.Occupied || cell.Color != t[i][j] {
				return false
			}
		}
	}
	return true
}

// MatchesTarget reports whether the board's center matches the target.
func (b *Board) MatchesTarget(t Target) bool {
	return b.Grid.MatchesTarget(t)
}
