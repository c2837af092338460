package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const (
	actionNewGame   = "game:new"
	actionGameState = "game:state"
	actionMove      = "game:move"
	actionJump      = "game:jump"

	// reply action for frames that are not a valid message
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Request struct {
	GameID string `json:"game_id"`
	Cell   *int   `json:"cell,omitempty"`
	Step   *int   `json:"step,omitempty"`
}

type Payload struct {
	Game  *view.Game `json:"game,omitempty"`
	Error *Error     `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
