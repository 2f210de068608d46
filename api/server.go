package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/slideduel/slideduel/game/history"
)

// MatchStore is the read side of the match history.
type MatchStore interface {
	List() ([]history.Record, error)
	Get(id string) (history.Record, error)
}

// Server routes the HTTP surface: the websocket game endpoint, the health
// check, and the match-history REST endpoints.
type Server struct {
	store  MatchStore
	log    *zap.SugaredLogger
	router *mux.Router
}

// NewServer creates the server. game handles websocket upgrades on the
// /connect endpoint.
func NewServer(game http.Handler, store MatchStore, log *zap.SugaredLogger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		router: mux.NewRouter(),
	}

	s.setupRoutes(game)
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(game http.Handler) {
	s.router.Handle("/connect", game)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Match history handlers

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List()
	if err != nil {
		s.log.Warnf("listing matches failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "started", "ended" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of matches to return

	if sortBy == "" {
		sortBy = "ended"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(records, func(i, j int) bool {
		ti, tj := records[i].EndedAt, records[j].EndedAt
		if sortBy == "started" {
			ti, tj = records[i].StartedAt, records[j].StartedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(records)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(records) {
			records = records[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"total":   total,
		"matches": records,
		"sort":    sortBy,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := s.store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.log.Warnf("loading match %s failed: %v", id, err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, record)
}
