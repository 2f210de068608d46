// Package api routes the server's HTTP surface.
//
// Endpoints:
//   - GET  /connect           - websocket upgrade onto the game endpoint
//   - GET  /healthz           - health check
//   - GET  /api/matches       - list finished matches (sort, order, limit)
//   - GET  /api/matches/{id}  - get one finished match
//
// All REST endpoints return JSON. Errors carry an appropriate HTTP status
// and a body of the form {"error": "message"}.
package api
