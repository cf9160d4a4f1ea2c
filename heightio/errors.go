package heightio

import "errors"

var (
	ErrNotSquare     = errors.New("heightio: image is not square")
	ErrUnknownFormat = errors.New("heightio: unknown output format")
)
