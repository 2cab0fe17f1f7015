package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"santorini/experiments/metrics"
	"santorini/game"
)

type findMoveRequest struct {
	State game.State `json:"state"`
}

type findMoveResponse struct {
	Move    game.Move            `json:"move"`
	Metrics metrics.SearchMetric `json:"metrics"`
}

type remoteAgent struct {
	baseURL string
	client  *http.Client
}

// NewRemoteAgent returns an agent that asks an agent server at baseURL for its
// moves. A nil client uses http.DefaultClient.
func NewRemoteAgent(baseURL string, client *http.Client) Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return remoteAgent{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

// FindMove posts the state to /findmove on the agent side.
func (a remoteAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	body, err := json.Marshal(findMoveRequest{State: state})
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent at %s: %w", a.baseURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return game.Move{}, metrics.SearchMetric{}, ErrNoMove
	default:
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var decoded findMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return decoded.Move, decoded.Metrics, nil
}
