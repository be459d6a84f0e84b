package sdk

import (
	"net/http"
	"time"
)

type Option func(*options)

type options struct {
	addr    string
	timeout time.Duration
	http    *http.Client
}

func WithHTTPAddr(apiAddr string) Option {
	return func(o *options) {
		o.addr = apiAddr
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.http = client
	}
}
