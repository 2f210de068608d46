// Package board implements the sliding-tile board for Slide Duel.
//
// The board package provides:
//   - The 5x5 grid with a single hole and the slide move algorithm
//   - Target matching against the center 3x3 of the grid
//   - Random generation of boards and reachable target patterns
//   - A tile-identity view of the grid for client-side rendering
//
// Core Types:
//
// Board is the color-only grid the server plays on. TileBoard is the
// client-side view of the same grid that additionally assigns every tile a
// stable index, so a renderer can follow a tile across slides. Both views
// share the one slide algorithm.
//
// Usage:
//
//	b := board.GenerateBoard()
//	target := board.GenerateTarget()
//
//	if b.AttemptSlide(board.Position{Row: 2, Col: 0}) {
//		won := b.MatchesTarget(target)
//		_ = won
//	}
//
// Game Rules:
//
// A click is valid when it shares exactly the row or the column with the
// hole. The run of tiles between the hole and the clicked cell shifts one
// step toward the old hole position, the clicked cell becomes the new hole.
// A player wins when the center 3x3 of their board shows the shared target
// pattern.
package board
