package env

import "errors"

var (
	ErrClosed        = errors.New("environment is closed")
	ErrInvalidAction = errors.New("action outside action space")
	ErrNotReset      = errors.New("environment has not been reset")
)
