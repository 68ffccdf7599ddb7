package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoConfig         = errors.New("no guard config found")
	ErrInvalidSessionID = errors.New("invalid session id")
)
