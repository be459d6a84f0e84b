package browser

import "errors"

var (
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrHTTPNotOK        = errors.New("invalid status is not ok")
	ErrNotAnImage       = errors.New("element is not an image")
	ErrNoBody           = errors.New("document has no body")
	ErrDetached         = errors.New("element is not attached to the session")
	ErrSchemeNotAllowed = errors.New("url scheme is not allowed")
)
