package entity

import "time"

// Result is a finished game as kept by the results store.
type Result struct {
	SessionID  string    `json:"session_id"`
	Kind       Kind      `json:"kind"`
	Winner     string    `json:"winner"`
	AgainstAI  bool      `json:"against_ai"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewResult(session *Session) *Result {
	return &Result{
		SessionID:  session.ID,
		Kind:       session.Kind,
		Winner:     session.Winner(),
		AgainstAI:  session.AgainstAI,
		Moves:      session.Moves,
		FinishedAt: session.UpdatedAt,
	}
}

type LeaderboardRow struct {
	Winner string `json:"winner"`
	Wins   int    `json:"wins"`
}

// SessionEvent is what observers are told after a session changed.
type SessionEvent struct {
	Action   string   `json:"action"`
	Session  *Session `json:"session"`
	Finished bool     `json:"finished"`
}

const (
	ActionCreated  = "created"
	ActionMove     = "move"
	ActionSelect   = "select"
	ActionComputer = "computer_move"
	ActionRestart  = "restart"
	ActionClosed   = "closed"
	ActionToggleAI = "toggle_ai"
)
