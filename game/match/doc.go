// Package match pairs connections into two-player sessions and runs the
// authoritative game loop for each session.
//
// The match package implements:
//   - The matchmaking pool: a capacity-2 seat pool with LIFO id reuse
//   - The session coordinator: owner of both boards and the shared target
//   - The event stream contract between connection loops and those owners
//
// Architecture:
//
// The package is transport-agnostic. A connection loop calls Pool.Join and
// receives a Seat: a player id, the event channel to feed, the outbox of
// server messages to drain, and a done channel closed once the seat's
// consumer stops listening. While a player waits for an opponent the pool
// consumes their events; the moment both seats fill, ownership of the event
// channel and both outboxes moves to a freshly spawned session goroutine
// and the pool resets for the next pair. An in-flight session never blocks
// pairing.
//
// Concurrency:
//
// The pool processes one event at a time in its Run loop, so seat state is
// never mutated concurrently. A session goroutine exclusively owns both
// boards for its lifetime; nothing else touches them. All cancellation is
// carried by the context handed to Run, which every loop selects on.
package match
