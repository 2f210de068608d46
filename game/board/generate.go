package board

import "math/rand/v2"

// GenerateTarget samples a random target pattern. A pattern demanding more
// than four tiles of one color is unreachable, since every board carries
// exactly four per color, so the whole attempt is discarded and resampled.
func GenerateTarget() Target {
retry:
	for {
		var t Target
		var counts [NumColors]int

		for i := range t {
			for j := range t[i] {
				c := Color(rand.IntN(NumColors))
				counts[c]++
				if counts[c] > TilesPerColor {
					continue retry
				}
				t[i][j] = c
			}
		}
		return t
	}
}

// GenerateBoard builds a fresh board: four tiles of each color shuffled
// uniformly over the grid, with the hole at the center.
func GenerateBoard() *Board {
	colors := make([]Color, 0, NumTiles)
	for c := Color(0); c < NumColors; c++ {
		for i := 0; i < TilesPerColor; i++ {
			colors = append(colors, c)
		}
	}
	rand.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	b := &Board{Hole: Position{Size / 2, Size / 2}}
	next := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if (Position{i, j}) == b.Hole {
				continue
			}
			b.Grid[i][j] = Cell{Color: colors[next], Occupied: true}
			next++
		}
	}
	return b
}
