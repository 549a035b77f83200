package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeAlreadyInRoom = "already_in_room"
	ErrCodeAlreadyEnded  = "already_ended"
	ErrCodeUnknownRoom   = "unknown_room"
	ErrCodeInvalidClaim  = "invalid_claim"
	ErrCodeNotInRoom     = "not_in_room"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeRateLimited   = "rate_limited"
)

var (
	ErrAlreadyInRoom     = errors.New("already in a room, leave it first")
	ErrAlreadyEnded      = errors.New("game already ended")
	ErrUnknownRoom       = errors.New("room not found")
	ErrInvalidClaim      = errors.New("claimed values are not a winning line")
	ErrNotInRoom         = errors.New("not in room")
	ErrBadRequest        = errors.New("bad request")
	ErrUnknownConnection = errors.New("unknown connection")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// toCoreError maps a domain error onto its wire code.
func toCoreError(err error) *CoreError {
	var ce *CoreError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, ErrAlreadyInRoom):
		return coreError(ErrCodeAlreadyInRoom, err.Error())
	case errors.Is(err, ErrAlreadyEnded):
		return coreError(ErrCodeAlreadyEnded, err.Error())
	case errors.Is(err, ErrUnknownRoom):
		return coreError(ErrCodeUnknownRoom, err.Error())
	case errors.Is(err, ErrInvalidClaim):
		return coreError(ErrCodeInvalidClaim, err.Error())
	case errors.Is(err, ErrNotInRoom):
		return coreError(ErrCodeNotInRoom, err.Error())
	default:
		return coreError(ErrCodeBadRequest, err.Error())
	}
}

// silent reports errors that are dropped without telling the client.
func silent(err error) bool {
	return errors.Is(err, ErrAlreadyEnded) || errors.Is(err, ErrUnknownRoom)
}
