// Command analyze prints quick, human-readable statistics over the match
// history directory the server writes: outcome breakdown, win split
// between seats, and move/duration averages.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/slideduel/slideduel/game/history"
)

// Summary aggregates a set of match records.
type Summary struct {
	Matches     int
	Outcomes    map[string]int
	WinsBySeat  map[int]int
	TotalMoves  int
	TotalLength time.Duration
}

// AvgMoves is the mean number of moves per match.
func (s Summary) AvgMoves() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Matches)
}

// AvgLength is the mean wall-clock match duration.
func (s Summary) AvgLength() time.Duration {
	if s.Matches == 0 {
		return 0
	}
	return s.TotalLength / time.Duration(s.Matches)
}

func summarize(records []history.Record) Summary {
	s := Summary{
		Outcomes:   map[string]int{},
		WinsBySeat: map[int]int{},
	}
	for _, rec := range records {
		s.Matches++
		s.Outcomes[rec.Outcome]++
		s.TotalMoves += rec.Moves
		s.TotalLength += rec.Duration()
		if rec.Outcome == history.OutcomeWin {
			s.WinsBySeat[rec.Winner]++
		}
	}
	return s
}

func main() {
	dir := "matches"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	store, err := history.NewFileStore(dir)
	if err != nil {
		fmt.Printf("Error opening history: %v\n", err)
		os.Exit(1)
	}

	records, err := store.List()
	if err != nil {
		fmt.Printf("Error listing matches: %v\n", err)
		os.Exit(1)
	}

	s := summarize(records)

	fmt.Printf("=== Match history in %s ===\n", dir)
	fmt.Printf("Matches: %d\n", s.Matches)
	if s.Matches == 0 {
		return
	}

	fmt.Println("Outcomes:")
	for _, outcome := range []string{history.OutcomeWin, history.OutcomeDisconnect, history.OutcomeViolation, history.OutcomeShutdown} {
		if n := s.Outcomes[outcome]; n > 0 {
			fmt.Printf("  %-10s %d\n", outcome, n)
		}
	}

	if len(s.WinsBySeat) > 0 {
		fmt.Println("Wins by seat:")
		for seat := 0; seat < 2; seat++ {
			fmt.Printf("  player %d: %d\n", seat, s.WinsBySeat[seat])
		}
	}

	fmt.Printf("Average moves per match: %.1f\n", s.AvgMoves())
	fmt.Printf("Average match length: %s\n", s.AvgLength().Round(time.Second))
}
