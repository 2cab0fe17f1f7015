package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"santorini/game"
	"santorini/searcher"

	"github.com/stretchr/testify/suite"
)

type ServerSuite struct {
	suite.Suite
	handler http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	mcts := searcher.NewMCTS(searcher.WithIterations(50), searcher.WithSeed(1))
	s.handler = NewRouter(NewEvaluationAgent(mcts))
}

func (s *ServerSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *ServerSuite) TestHealth() {
	rr := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())
}

func (s *ServerSuite) TestFindMove_ReturnsLegalMove() {
	state := game.NewState()
	rr := s.request(http.MethodPost, "/findmove", findMoveRequest{State: state})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp findMoveResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(game.IsLegal(state, resp.Move))
}

func (s *ServerSuite) TestFindMove_BadJSON() {
	rr := s.request(http.MethodPost, "/findmove", `{"state":`)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *ServerSuite) TestFindMove_InvalidState() {
	body := `{"state":{"levels":[[4,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0]],"workers":[{"position":"a1","player":1}],"turn":1}}`
	rr := s.request(http.MethodPost, "/findmove", body)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *ServerSuite) TestFindMove_TrappedPlayer() {
	rr := s.request(http.MethodPost, "/findmove", findMoveRequest{State: trappedState()})
	s.Equal(http.StatusConflict, rr.Code)
}

func (s *ServerSuite) TestFindMove_WrongMethod() {
	rr := s.request(http.MethodGet, "/findmove", nil)
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
}

func (s *ServerSuite) TestLegalMoves() {
	rr := s.request(http.MethodPost, "/legalmoves", legalMovesRequest{State: game.NewState()})
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp legalMovesResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(game.LegalMoves(game.NewState()), resp.Moves)
	s.Equal(game.NoPlayer, resp.Winner)
}

func (s *ServerSuite) TestLegalMoves_TrappedPlayerLoses() {
	rr := s.request(http.MethodPost, "/legalmoves", legalMovesRequest{State: trappedState()})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"moves":[],"winner":2}`, rr.Body.String())
}

func (s *ServerSuite) TestPlay_LegalMove() {
	state := game.NewState()
	move := game.LegalMoves(state)[0]

	rr := s.request(http.MethodPost, "/play", playRequest{State: state, Move: move})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp playResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	expected, _ := state.Apply(move)
	s.Equal(expected, resp.State)
	s.Equal(game.NoPlayer, resp.Winner)
}

func (s *ServerSuite) TestPlay_IllegalMove() {
	body := map[string]any{"state": game.NewState(), "move": "a1-c3-b1"}
	rr := s.request(http.MethodPost, "/play", body)
	s.Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *ServerSuite) TestPlay_GameOver() {
	state := game.NewState()
	state.Won = game.Player2
	body := map[string]any{"state": state, "move": "a1-b2-c3"}
	rr := s.request(http.MethodPost, "/play", body)
	s.Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *ServerSuite) TestPlay_MalformedMove() {
	body := map[string]any{"state": game.NewState(), "move": "a1-b2"}
	rr := s.request(http.MethodPost, "/play", body)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *ServerSuite) TestMissingState() {
	for _, tc := range []struct {
		path string
		body string
	}{
		{"/findmove", `{}`},
		{"/legalmoves", `{}`},
		{"/play", `{"move":"a1-a2-a3"}`},
	} {
		rr := s.request(http.MethodPost, tc.path, tc.body)
		s.Equal(http.StatusBadRequest, rr.Code, tc.path)
		s.Contains(rr.Body.String(), game.ErrInvalidState.Error(), tc.path)
	}
}

func (s *ServerSuite) TestRemoteAgent() {
	ts := httptest.NewServer(s.handler)
	defer ts.Close()
	remote := NewRemoteAgent(ts.URL+"/", ts.Client())

	state := game.NewState()
	move, _, err := remote.FindMove(context.Background(), state)
	s.Require().NoError(err)
	s.True(game.IsLegal(state, move))

	_, _, err = remote.FindMove(context.Background(), trappedState())
	s.ErrorIs(err, ErrNoMove)
}

func (s *ServerSuite) TestRemoteAgent_Unreachable() {
	ts := httptest.NewServer(s.handler)
	ts.Close()

	_, _, err := NewRemoteAgent(ts.URL, nil).FindMove(context.Background(), game.NewState())
	s.Error(err)
}
