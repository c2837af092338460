package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameUseCase := usecase.NewGameUseCase(logger, repository.NewMemorySessionRepository(time.Hour))

	server := httptest.NewServer(New(logger, gameUseCase).Handler(ctx))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, req any) (string, Payload) {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: body}))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))

	var payload Payload
	require.NoError(t, json.Unmarshal(reply.Payload, &payload))

	return reply.Action, payload
}

func intPtr(v int) *int {
	return &v
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t)

	// Given: a new game
	action, payload := send(t, conn, actionNewGame, Request{})
	require.Equal(t, actionNewGame, action)
	require.Nil(t, payload.Error)
	gameID := payload.Game.ID

	// When: X plays 0 and O plays 4
	_, payload = send(t, conn, actionMove, Request{GameID: gameID, Cell: intPtr(0)})
	require.Nil(t, payload.Error)
	_, payload = send(t, conn, actionMove, Request{GameID: gameID, Cell: intPtr(4)})
	require.Nil(t, payload.Error)

	// Then: both marks are on the board
	assert.Equal(t, "X", payload.Game.Board[0])
	assert.Equal(t, "O", payload.Game.Board[4])

	// When: X plays the occupied cell 0
	action, payload = send(t, conn, actionMove, Request{GameID: gameID, Cell: intPtr(0)})

	// Then: the move is rejected and the game is unchanged
	assert.Equal(t, actionMove, action)
	require.NotNil(t, payload.Error)
	assert.Equal(t, apperror.CodeCellOccupied, payload.Error.Code)
	assert.Equal(t, 2, payload.Game.Step)

	// When: jumping back to the start
	_, payload = send(t, conn, actionJump, Request{GameID: gameID, Step: intPtr(0)})

	// Then: the empty board is shown and the history kept
	require.Nil(t, payload.Error)
	assert.Equal(t, [9]string{}, payload.Game.Board)
	assert.Len(t, payload.Game.Steps, 3)

	// When: asking for the state
	_, payload = send(t, conn, actionGameState, Request{GameID: gameID})

	// Then: the cursor is still on the start
	require.Nil(t, payload.Error)
	assert.Equal(t, 0, payload.Game.Step)
}

func TestServer_BadRequests(t *testing.T) {
	conn := dial(t)

	testCases := []struct {
		name   string
		action string
		req    Request
		code   string
	}{
		{name: "unknown action", action: "game:undo", req: Request{}, code: apperror.CodeBadRequest},
		{name: "move without game", action: actionMove, req: Request{Cell: intPtr(0)}, code: apperror.CodeBadRequest},
		{name: "move without cell", action: actionMove, req: Request{GameID: "x"}, code: apperror.CodeBadRequest},
		{name: "jump without step", action: actionJump, req: Request{GameID: "x"}, code: apperror.CodeBadRequest},
		{name: "state without game", action: actionGameState, req: Request{}, code: apperror.CodeBadRequest},
		{name: "unknown game", action: actionGameState, req: Request{GameID: "missing"}, code: apperror.CodeNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, payload := send(t, conn, tc.action, tc.req)

			assert.Equal(t, tc.action, action)
			require.NotNil(t, payload.Error)
			assert.Equal(t, tc.code, payload.Error.Code)
		})
	}
}

func TestServer_MalformedFrames(t *testing.T) {
	conn := dial(t)

	frames := []struct {
		name  string
		frame string
	}{
		{name: "truncated json", frame: `{"action":`},
		{name: "wrong action type", frame: `{"action": 5}`},
		{name: "not json", frame: `not json`},
	}

	for _, tc := range frames {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a raw frame that is not a valid message
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tc.frame)))

			// When: reading the reply
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

			var reply Message
			require.NoError(t, conn.ReadJSON(&reply))

			// Then: a bad_request error is reported
			var payload Payload
			require.NoError(t, json.Unmarshal(reply.Payload, &payload))

			assert.Equal(t, actionError, reply.Action)
			require.NotNil(t, payload.Error)
			assert.Equal(t, apperror.CodeBadRequest, payload.Error.Code)
			assert.Nil(t, payload.Game)
		})
	}

	// Then: the connection still serves valid messages
	require.NoError(t, conn.SetReadDeadline(time.Time{}))

	action, payload := send(t, conn, actionNewGame, Request{})
	assert.Equal(t, actionNewGame, action)
	assert.Nil(t, payload.Error)
	assert.NotEmpty(t, payload.Game.ID)
}
