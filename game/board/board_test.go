package board

import (
	"testing"
)

// rowFixture builds a board whose row 2 holds distinct colors around the
// center hole, so slides along that row can be asserted cell by cell. The
// rest of the grid is filled with White tiles.
func rowFixture() *Board {
	b := &Board{Hole: Position{2, 2}}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if i == 2 && j == 2 {
				continue
			}
			b.Grid[i][j] = Cell{Color: White, Occupied: true}
		}
	}
	b.Grid[2][0] = Cell{Color: Yellow, Occupied: true}
	b.Grid[2][1] = Cell{Color: Orange, Occupied: true}
	b.Grid[2][3] = Cell{Color: Red, Occupied: true}
	b.Grid[2][4] = Cell{Color: Green, Occupied: true}
	return b
}

func TestAttemptSlideRowLeftOfHole(t *testing.T) {
	b := rowFixture()
	before := b.Grid

	if !b.AttemptSlide(Position{2, 0}) {
		t.Fatal("expected slide at (2,0) to succeed")
	}

	if b.Hole != (Position{2, 0}) {
		t.Errorf("expected hole at (2,0), got %v", b.Hole)
	}
	if b.Grid[2][0].Occupied {
		t.Error("expected clicked cell (2,0) to be empty")
	}

	// both tiles between the click and the old hole shift one step toward
	// the old hole position
	want := [Size]Cell{
		{},
		{Color: Yellow, Occupied: true},
		{Color: Orange, Occupied: true},
		{Color: Red, Occupied: true},
		{Color: Green, Occupied: true},
	}
	for j := 0; j < Size; j++ {
		if b.Grid[2][j] != want[j] {
			t.Errorf("row 2 col %d: expected %+v, got %+v", j, want[j], b.Grid[2][j])
		}
	}

	// no cell outside row 2 changes
	for i := 0; i < Size; i++ {
		if i == 2 {
			continue
		}
		for j := 0; j < Size; j++ {
			if b.Grid[i][j] != before[i][j] {
				t.Errorf("cell (%d,%d) changed unexpectedly", i, j)
			}
		}
	}
}

func TestAttemptSlideRowRightOfHole(t *testing.T) {
	b := rowFixture()

	if !b.AttemptSlide(Position{2, 4}) {
		t.Fatal("expected slide at (2,4) to succeed")
	}

	if b.Hole != (Position{2, 4}) {
		t.Errorf("expected hole at (2,4), got %v", b.Hole)
	}

	want := [Size]Cell{
		{Color: Yellow, Occupied: true},
		{Color: Orange, Occupied: true},
		{Color: Red, Occupied: true},
		{Color: Green, Occupied: true},
		{},
	}
	for j := 0; j < Size; j++ {
		if b.Grid[2][j] != want[j] {
			t.Errorf("row 2 col %d: expected %+v, got %+v", j, want[j], b.Grid[2][j])
		}
	}
}

func TestAttemptSlideColumn(t *testing.T) {
	b := &Board{Hole: Position{2, 2}}
	colors := [Size]Color{Yellow, Orange, White, Red, Green}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if i == 2 && j == 2 {
				continue
			}
			b.Grid[i][j] = Cell{Color: colors[i], Occupied: true}
		}
	}

	if !b.AttemptSlide(Position{0, 2}) {
		t.Fatal("expected slide at (0,2) to succeed")
	}

	if b.Hole != (Position{0, 2}) {
		t.Errorf("expected hole at (0,2), got %v", b.Hole)
	}
	want := [Size]Cell{
		{},
		{Color: Yellow, Occupied: true},
		{Color: Orange, Occupied: true},
		{Color: Red, Occupied: true},
		{Color: Green, Occupied: true},
	}
	for i := 0; i < Size; i++ {
		if b.Grid[i][2] != want[i] {
			t.Errorf("col 2 row %d: expected %+v, got %+v", i, want[i], b.Grid[i][2])
		}
	}
}

func TestAttemptSlideAdjacentTile(t *testing.T) {
	b := rowFixture()

	if !b.AttemptSlide(Position{2, 1}) {
		t.Fatal("expected slide at (2,1) to succeed")
	}

	if b.Hole != (Position{2, 1}) {
		t.Errorf("expected hole at (2,1), got %v", b.Hole)
	}
	if got := b.Grid[2][2]; got != (Cell{Color: Orange, Occupied: true}) {
		t.Errorf("expected (2,2) to hold the old (2,1) tile, got %+v", got)
	}
	if b.Grid[2][1].Occupied {
		t.Error("expected (2,1) to be empty")
	}
}

func TestAttemptSlideRejectsOffAxisClicks(t *testing.T) {
	invalid := []Position{
		{0, 0}, {1, 3}, {4, 1}, {3, 4}, // off both axes
		{2, 2}, // the hole itself
	}

	for _, pos := range invalid {
		b := rowFixture()
		before := *b

		if b.AttemptSlide(pos) {
			t.Errorf("expected slide at %v to be rejected", pos)
		}
		if *b != before {
			t.Errorf("board mutated by rejected slide at %v", pos)
		}
	}
}

func TestAttemptSlidePreservesColorCounts(t *testing.T) {
	clicks := []Position{{2, 0}, {0, 0}, {0, 3}, {4, 3}, {4, 4}, {2, 4}}

	b := GenerateBoard()
	for _, pos := range clicks {
		if !b.AttemptSlide(pos) {
			t.Fatalf("expected slide at %v to succeed (hole %v)", pos, b.Hole)
		}

		if b.Hole != pos {
			t.Fatalf("expected hole at %v, got %v", pos, b.Hole)
		}
		var counts [NumColors]int
		empty := 0
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				if !b.Grid[i][j].Occupied {
					empty++
					continue
				}
				counts[b.Grid[i][j].Color]++
			}
		}
		if empty != 1 {
			t.Fatalf("expected exactly one empty cell after slide, got %d", empty)
		}
		for c, n := range counts {
			if n != TilesPerColor {
				t.Fatalf("expected %d %v tiles, got %d", TilesPerColor, Color(c), n)
			}
		}
	}
}

func TestMatchesTarget(t *testing.T) {
	b := rowFixture()
	b.AttemptSlide(Position{2, 0}) // move the hole out of the center

	var target Target
	for i := 0; i < TargetSize; i++ {
		for j := 0; j < TargetSize; j++ {
			cell := b.Grid[i+1][j+1]
			if !cell.Occupied {
				t.Fatal("fixture center should be fully occupied")
			}
			target[i][j] = cell.Color
		}
	}

	if !b.MatchesTarget(target) {
		t.Error("expected board to match its own center pattern")
	}
	// idempotence: same board, same answer
	if !b.MatchesTarget(target) {
		t.Error("expected repeated check to match as well")
	}

	target[0][0] = Blue
	if b.MatchesTarget(target) {
		t.Error("expected mismatched pattern not to match")
	}
}

func TestMatchesTargetRejectsHoleInCenter(t *testing.T) {
	b := rowFixture() // hole at (2,2), inside the center 3x3

	// mirror the center's color fields exactly, including the empty cell's
	// zero value, so occupancy is the only thing that can fail the match
	var target Target
	for i := range target {
		for j := range target[i] {
			target[i][j] = b.Grid[i+1][j+1].Color
		}
	}

	if b.MatchesTarget(target) {
		t.Error("expected board with hole in center not to match any target")
	}
}
