package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/AeroX2/wordmarket/internal/dependencies/mocks"
	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/board"
	"github.com/AeroX2/wordmarket/internal/services/dictionary"
	"github.com/AeroX2/wordmarket/internal/services/room"
	"github.com/AeroX2/wordmarket/internal/storage/memory"
	"github.com/AeroX2/wordmarket/internal/testutil"
)

type HandlerSuite struct {
	suite.Suite
	controller *room.Controller
	hub        *Hub
	server     *httptest.Server
	ctx        context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	storage := memory.New()
	dict := dictionary.New(storage)
	dict.LoadWords([]string{"EEE"})
	random := mocks.NewMockRandom()

	s.controller = room.NewController(
		storage,
		board.New(random),
		dict,
		mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		random,
		mocks.NewMockScheduler(),
		testutil.NopLogger(),
	)
	s.hub = NewHub(testutil.NopLogger())
	s.controller.SetBroadcaster(s.hub)

	router := mux.NewRouter()
	router.Handle("/rooms/{code}/ws", NewHandler(s.hub, s.controller, testutil.NopLogger()))
	s.server = httptest.NewServer(router)
	s.ctx = context.Background()
}

func (s *HandlerSuite) TearDownTest() {
	s.server.Close()
}

func (s *HandlerSuite) dial(code model.RoomCode, playerID model.PlayerID) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") +
		"/rooms/" + string(code) + "/ws?playerId=" + string(playerID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func (s *HandlerSuite) readEvent(conn *websocket.Conn) model.RoomEvent {
	var event model.RoomEvent
	s.Require().NoError(conn.ReadJSON(&event))
	return event
}

func (s *HandlerSuite) TestConnectRequiresKnownPlayer() {
	_, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") +
		"/rooms/" + string(state.RoomID) + "/ws?playerId=ghost"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerSuite) TestConnectReceivesInitialState() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	defer conn.Close()

	event := s.readEvent(conn)
	s.Equal("state", event.Type)
	s.Require().NotNil(event.State)
	s.Equal(state.RoomID, event.State.RoomID)
}

func (s *HandlerSuite) TestStateChangeIsBroadcast() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	defer conn.Close()
	s.readEvent(conn) // initial state

	_, _, err = s.controller.JoinRoom(s.ctx, state.RoomID, "Bob")
	s.Require().NoError(err)

	event := s.readEvent(conn)
	s.Equal("state", event.Type)
	s.Require().NotNil(event.State)
	s.Len(event.State.Players, 2)
}

func (s *HandlerSuite) TestPingReturnsSnapshot() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	defer conn.Close()
	s.readEvent(conn)

	s.Require().NoError(conn.WriteJSON(map[string]string{"type": "ping"}))

	event := s.readEvent(conn)
	s.Equal("state", event.Type)
	s.NotNil(event.State)
}

func (s *HandlerSuite) TestSubmitFailureReportedToSenderOnly() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	defer conn.Close()
	s.readEvent(conn)

	// The room is still in the lobby, so any submission is rejected.
	s.Require().NoError(conn.WriteJSON(map[string]string{"type": "submit", "word": "eee"}))

	event := s.readEvent(conn)
	s.Equal("error", event.Type)
	s.Equal("Round is not active.", event.Message)
}

func (s *HandlerSuite) TestMalformedPayloadReportedBack() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	defer conn.Close()
	s.readEvent(conn)

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	event := s.readEvent(conn)
	s.Equal("error", event.Type)
	s.Equal("Malformed websocket payload.", event.Message)
}

func (s *HandlerSuite) TestDisconnectRemovesConnection() {
	playerID, state, err := s.controller.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)

	conn := s.dial(state.RoomID, playerID)
	s.readEvent(conn)
	s.Equal(1, s.hub.ConnectionCount(state.RoomID))

	conn.Close()
	s.Eventually(func() bool {
		return s.hub.ConnectionCount(state.RoomID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
