package engine

import "errors"

// ErrUnknownEngine means the requested kind is not registered.
var ErrUnknownEngine = errors.New("unknown engine kind")
