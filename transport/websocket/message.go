package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
)

const (
	actionSessionGet    = "session:get"
	actionSessionState  = "session:state"
	actionSessionClosed = "session:closed"

	actionGameRestart  = "game:restart"
	actionGameOpponent = "game:opponent"

	actionCheckersSelect   = "checkers:select"
	actionTicTacToePlace   = "tictactoe:place"
	actionConnectFourDrop  = "connectfour:drop"
	actionGuessNumberGuess = "guessnumber:guess"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both the arguments of a request and the answer to it.
type Payload struct {
	Session  *entity.Session `json:"session,omitempty"`
	Event    string          `json:"event,omitempty"`
	Finished bool            `json:"finished,omitempty"`

	Row       *int  `json:"row,omitempty"`
	Col       *int  `json:"col,omitempty"`
	Column    *int  `json:"column,omitempty"`
	Value     *int  `json:"value,omitempty"`
	AgainstAI *bool `json:"against_ai,omitempty"`

	Error string `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
