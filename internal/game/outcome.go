package game

// Outcome is what an input did to a game.
type Outcome int

const (
	// OutcomeIgnored means the input was rejected and nothing changed.
	OutcomeIgnored Outcome = iota
	// OutcomeSelected means only the selection changed; no piece moved.
	OutcomeSelected
	// OutcomeMoved means a move was played.
	OutcomeMoved
)

// MoveOutcome reports a move of an engine that only knows applied and ignored moves.
func MoveOutcome(applied bool) Outcome {
	if applied {
		return OutcomeMoved
	}
	return OutcomeIgnored
}
