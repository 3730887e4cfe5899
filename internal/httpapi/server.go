// Package httpapi exposes the auction engine over HTTP plus a
// websocket event stream.
//
// Validation failures map to 422, data-integrity refusals to 409, and
// anything else to 500, so chat frontends can relay engine messages
// verbatim while treating 5xx as "try again later".
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/engine"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// Server wires the engine into HTTP handlers.
type Server struct {
	eng *engine.Engine
	hub *Hub
	log *slog.Logger
}

// NewServer creates a Server and starts the websocket hub.
func NewServer(eng *engine.Engine, log *slog.Logger) *Server {
	s := &Server{eng: eng, hub: NewHub(log), log: log}
	go s.hub.Run()
	return s
}

// Close stops the event hub, dropping any connected websocket clients.
// Call after the HTTP listener has shut down.
func (s *Server) Close() {
	s.hub.Close()
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/squads", s.handleSquads).Methods(http.MethodGet)
	api.HandleFunc("/squads/{team}", s.handleSquad).Methods(http.MethodGet)
	api.HandleFunc("/sales", s.handleSales).Methods(http.MethodGet)
	api.HandleFunc("/bids/{player}", s.handleBids).Methods(http.MethodGet)

	api.HandleFunc("/auction/start", s.handleStart).Methods(http.MethodPost)
	api.HandleFunc("/auction/stop", s.handleStop).Methods(http.MethodPost)
	api.HandleFunc("/auction/pause", s.handlePause).Methods(http.MethodPost)
	api.HandleFunc("/auction/resume", s.handleResume).Methods(http.MethodPost)
	api.HandleFunc("/auction/next", s.handleNext).Methods(http.MethodPost)
	api.HandleFunc("/auction/finalize", s.handleFinalize).Methods(http.MethodPost)
	api.HandleFunc("/auction/skip", s.handleSkip).Methods(http.MethodPost)
	api.HandleFunc("/auction/sold-to", s.handleSoldTo).Methods(http.MethodPost)

	api.HandleFunc("/bids", s.handlePlaceBid).Methods(http.MethodPost)
	api.HandleFunc("/bids/undo", s.handleUndoBid).Methods(http.MethodPost)
	api.HandleFunc("/autobids", s.handleSetAutoBid).Methods(http.MethodPost)
	api.HandleFunc("/autobids/{team}", s.handleClearAutoBid).Methods(http.MethodDelete)

	api.HandleFunc("/sales/rollback", s.handleRollback).Methods(http.MethodPost)
	api.HandleFunc("/trades", s.handleCashTrade).Methods(http.MethodPost)
	api.HandleFunc("/trades/swap", s.handleSwap).Methods(http.MethodPost)
	api.HandleFunc("/players/release", s.handleRelease).Methods(http.MethodPost)
	api.HandleFunc("/players/reauction", s.handleReauction).Methods(http.MethodPost)

	api.HandleFunc("/admin/countdown", s.handleCountdown).Methods(http.MethodPost)
	api.HandleFunc("/admin/purse", s.handleSetPurse).Methods(http.MethodPost)
	api.HandleFunc("/admin/users", s.handleAssignUser).Methods(http.MethodPost)
	api.HandleFunc("/admin/reset", s.handleReset).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.hub.serveWS)
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps engine error codes onto HTTP status classes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var engErr *engine.Error
	switch {
	case errors.As(err, &engErr) && engine.IsIntegrity(err):
		s.writeJSON(w, http.StatusConflict, errorBody{Error: engErr.Message, Code: string(engErr.Code)})
	case errors.As(err, &engErr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: engErr.Message, Code: string(engErr.Code)})
	case errors.Is(err, store.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	default:
		s.log.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// decode reads a JSON request body into dst.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return false
	}
	return true
}
