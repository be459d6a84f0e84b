package domobject

import "errors"

var (
	ErrWindowIsRequired  = errors.New("window is required")
	ErrNoDocumentElement = errors.New("document has no root element")
	ErrMaxDepthExceeded  = errors.New("max depth exceeded")
)
