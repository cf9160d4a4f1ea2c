package config

import "errors"

var (
	ErrInvalid          = errors.New("config: invalid value")
	ErrUnknownGenerator = errors.New("config: unknown generator")
)
