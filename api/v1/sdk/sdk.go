// Package sdk is an HTTP client for the v1 snapshot API.
package sdk

import (
	"errors"
	"net/http"
	"time"
)

var ErrNoAddr = errors.New("api url is not defined")

func NewWithOpts(opts ...Option) (*Client, error) {
	opt := &options{
		timeout: time.Minute,
	}

	for _, o := range opts {
		o(opt)
	}

	if opt.addr == "" {
		return nil, ErrNoAddr
	}

	httpClient := opt.http
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opt.timeout,
		}
	}

	return &Client{
		apiURL: opt.addr + "/v1",
		http:   httpClient,
	}, nil
}
