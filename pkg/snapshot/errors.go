package snapshot

import "errors"

var (
	ErrURLIsRequired = errors.New("url is required")
	ErrNoBackends    = errors.New("no backends configured")
)
