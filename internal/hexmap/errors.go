package hexmap

import "errors"

var (
	errNoUnexploredBlock = errors.New("hexmap: no unexplored block pending")
	errBadRotation       = errors.New("hexmap: rotation must be 0 or 3")
)
