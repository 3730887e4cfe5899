package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/engine"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.eng.Status(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	st, err := s.eng.Status(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st.Teams)
}

func (s *Server) handleSquads(w http.ResponseWriter, r *http.Request) {
	squads, err := s.eng.Squads(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, squads)
}

func (s *Server) handleSquad(w http.ResponseWriter, r *http.Request) {
	squad, err := s.eng.Squad(r.Context(), mux.Vars(r)["team"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, squad)
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.eng.Sales(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sales)
}

func (s *Server) handleBids(w http.ResponseWriter, r *http.Request) {
	bids, err := s.eng.Bids(r.Context(), mux.Vars(r)["player"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bids)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.Start(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("auction_started", nil)
	s.writeJSON(w, http.StatusOK, map[string]bool{"active": true})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.Stop(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("auction_stopped", nil)
	s.writeJSON(w, http.StatusOK, map[string]bool{"active": false})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.Pause(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("auction_paused", nil)
	s.writeJSON(w, http.StatusOK, map[string]bool{"paused": true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.Resume(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("auction_resumed", nil)
	s.writeJSON(w, http.StatusOK, map[string]bool{"paused": false})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	next, err := s.eng.SelectNextPlayer(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("player_up", next)
	s.writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	res, err := s.eng.FinalizeSale(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	switch res.Outcome {
	case engine.OutcomeSold:
		s.hub.Publish("player_sold", res)
	case engine.OutcomeUnsold:
		s.hub.Publish("player_unsold", res)
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	player, err := s.eng.SkipPlayer(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("player_skipped", map[string]string{"player": player})
	s.writeJSON(w, http.StatusOK, map[string]string{"player": player})
}

func (s *Server) handleSoldTo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team string `json:"team"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.eng.SoldTo(r.Context(), req.Team)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("player_sold", res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team     string `json:"team"`
		UserID   int64  `json:"user_id"`
		UserName string `json:"user_name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.eng.PlaceBid(r.Context(), engine.Bidder{
		Team:     req.Team,
		UserID:   req.UserID,
		UserName: req.UserName,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("bid_placed", res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUndoBid(w http.ResponseWriter, r *http.Request) {
	undone, err := s.eng.UndoLastBid(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("bid_undone", undone)
	s.writeJSON(w, http.StatusOK, undone)
}

func (s *Server) handleSetAutoBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team   string `json:"team"`
		Max    int64  `json:"max"`
		UserID int64  `json:"user_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.eng.SetAutoBid(r.Context(), req.Team, req.Max, req.UserID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"team": req.Team})
}

func (s *Server) handleClearAutoBid(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.ClearAutoBid(r.Context(), mux.Vars(r)["team"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	sale, err := s.eng.RollbackLastSale(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("sale_rolled_back", sale)
	s.writeJSON(w, http.StatusOK, sale)
}

func (s *Server) handleCashTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		From   string `json:"from"`
		To     string `json:"to"`
		Price  int64  `json:"price"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.eng.CashTrade(r.Context(), req.Player, req.From, req.To, req.Price)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("trade_completed", res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerA      string `json:"player_a"`
		PlayerB      string `json:"player_b"`
		Compensation int64  `json:"compensation"`
		Payer        string `json:"payer"` // "", "a" or "b"
	}
	if !s.decode(w, r, &req) {
		return
	}
	var payer engine.CompensationPayer
	switch req.Payer {
	case "", "none":
		payer = engine.PayerNone
	case "a":
		payer = engine.PayerA
	case "b":
		payer = engine.PayerB
	default:
		s.writeJSON(w, http.StatusUnprocessableEntity,
			errorBody{Error: "payer must be \"a\", \"b\" or empty", Code: string(engine.ErrCodeBadPayer)})
		return
	}
	resA, resB, err := s.eng.Swap(r.Context(), req.PlayerA, req.PlayerB, req.Compensation, payer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := map[string]engine.TradeResult{"a": resA, "b": resB}
	s.hub.Publish("swap_completed", out)
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	released, err := s.eng.ReleasePlayer(r.Context(), req.Player)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("player_released", released)
	s.writeJSON(w, http.StatusOK, released)
}

func (s *Server) handleReauction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := s.eng.ReauctionPlayer(r.Context(), req.Player)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("player_requeued", entry)
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds int `json:"seconds"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.eng.SetCountdown(r.Context(), req.Seconds); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"seconds": req.Seconds})
}

func (s *Server) handleSetPurse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team   string `json:"team"`
		Amount int64  `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.eng.SetPurse(r.Context(), req.Team, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"purse": req.Amount})
}

func (s *Server) handleAssignUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"user_id"`
		Team     string `json:"team"`
		UserName string `json:"user_name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.eng.AssignUserTeam(r.Context(), req.UserID, req.Team, req.UserName); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.ClearAll(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Publish("auction_reset", nil)
	w.WriteHeader(http.StatusNoContent)
}
