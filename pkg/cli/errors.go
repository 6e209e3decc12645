package cli

import "errors"

// Common CLI errors
var (
	ErrVerificationFailed = errors.New("verification failed")
	ErrNoLogFiles         = errors.New("no log files match")
)
