package renderer

import "errors"

// Errors returned by Prepare and Apply.
var (
	ErrNoContext      = errors.New("renderer: no render context")
	ErrNoFramebuffer  = errors.New("renderer: no framebuffer")
	ErrNoQueue        = errors.New("renderer: no processing queue")
	ErrNoViewport     = errors.New("renderer: empty viewport")
	ErrNotImplemented = errors.New("renderer: not implemented")
	ErrUnknownMode    = errors.New("renderer: unknown mode")
)
