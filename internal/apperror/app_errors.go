package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownGameKind = errors.New("unknown game kind")
	ErrWrongGameKind   = errors.New("move does not belong to this game")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrUnknownAction   = errors.New("unknown action")
	ErrNotSubscribed   = errors.New("client is not subscribed to a session")
)
