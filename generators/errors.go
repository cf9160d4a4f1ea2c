package generators

import "errors"

var ErrUnknownBasis = errors.New("generators: unknown noise basis")
