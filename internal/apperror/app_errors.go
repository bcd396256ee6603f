package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidSnapshot = errors.New("invalid session snapshot")
	ErrSessionNotFound = errors.New("session not found")
)
