package api

import (
	"net/http"
)

type MiddleWare func(w http.ResponseWriter, r *http.Request)

const (
	_       = iota
	KB Byte = 1 << (10 * iota)
	MB
)

type Byte int64

// WithMaxBytes limits the request body, reads past n fail.
func WithMaxBytes(n Byte) MiddleWare {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, int64(n))
	}
}
