package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"santorini/game"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type legalMovesRequest struct {
	State game.State `json:"state"`
}

type legalMovesResponse struct {
	Moves  []game.Move `json:"moves"`
	Winner game.Player `json:"winner"`
}

type playRequest struct {
	State game.State `json:"state"`
	Move  game.Move  `json:"move"`
}

type playResponse struct {
	State  game.State  `json:"state"`
	Winner game.Player `json:"winner"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	mu    sync.Mutex // One search at a time
	agent Agent
}

// NewRouter exposes agent and the rules engine over HTTP.
func NewRouter(agent Agent) http.Handler {
	s := &server{agent: agent}

	r := mux.NewRouter()
	r.Use(recovery)
	r.Use(logging)

	r.HandleFunc("/findmove", s.handleFindMove).Methods(http.MethodPost)
	r.HandleFunc("/legalmoves", handleLegalMoves).Methods(http.MethodPost)
	r.HandleFunc("/play", handlePlay).Methods(http.MethodPost)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	return r
}

// Serve runs an agent server on addr until ctx is done.
func Serve(ctx context.Context, addr string, agent Agent) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(agent),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("starting agent server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down agent server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload findMoveRequest
	if !decodeRequest(w, r, &payload, &payload.State) {
		return
	}

	s.mu.Lock()
	move, metric, err := s.agent.FindMove(r.Context(), payload.State)
	s.mu.Unlock()

	switch {
	case errors.Is(err, ErrNoMove):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, findMoveResponse{Move: move, Metrics: metric})
	}
}

func handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var payload legalMovesRequest
	if !decodeRequest(w, r, &payload, &payload.State) {
		return
	}

	moves := game.LegalMoves(payload.State)
	if moves == nil {
		moves = []game.Move{}
	}
	winner, _ := payload.State.Outcome()
	writeJSON(w, http.StatusOK, legalMovesResponse{Moves: moves, Winner: winner})
}

func handlePlay(w http.ResponseWriter, r *http.Request) {
	var payload playRequest
	if !decodeRequest(w, r, &payload, &payload.State) {
		return
	}

	next, _, err := game.Play(payload.State, payload.Move)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	winner, _ := next.Outcome()
	writeJSON(w, http.StatusOK, playResponse{State: next, Winner: winner})
}

// decodeRequest reads a JSON body carrying a game state into payload. A body
// without a state leaves the zero State, which fails validation like any other
// malformed state. It answers 400 and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, payload any, state *game.State) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: " + err.Error()})
		return false
	}
	if err := state.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: " + err.Error()})
		return false
	}
	return true
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
