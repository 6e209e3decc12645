package capture

import "errors"

// Misuse errors. These indicate programming mistakes in the calling test.
var (
	ErrNoCapture     = errors.New("no active log capture")
	ErrWindowOpen    = errors.New("capture window already open")
	ErrWindowNotOpen = errors.New("capture window was never opened")
	ErrWindowClosed  = errors.New("capture window already closed")
)
