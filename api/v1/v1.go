// Package v1 serves snapshots over HTTP.
package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/api"
	"github.com/zdunecki/domobject/api/v1/router"
)

var ErrNoSnapshotter = errors.New("no snapshot service")

type Option func(*v1)

// WithTimeout bounds every snapshot taken by a request.
func WithTimeout(d time.Duration) Option {
	return func(a *v1) {
		a.timeout = d
	}
}

func WithLogger(entry *log.Entry) Option {
	return func(a *v1) {
		a.log = entry
	}
}

type v1 struct {
	snapshots router.Snapshotter
	timeout   time.Duration

	log *log.Entry
}

func New(snapshots router.Snapshotter, opts ...Option) (*v1, error) {
	if snapshots == nil {
		return nil, ErrNoSnapshotter
	}

	v := &v1{
		snapshots: snapshots,
		log: log.WithFields(map[string]interface{}{
			"service": "api",
		}),
	}

	for _, o := range opts {
		o(v)
	}

	return v, nil
}

// Register mounts the v1 routes on v1.
func (apiv1 *v1) Register(v1 api.API) {
	router.New(v1, apiv1.snapshots, apiv1.timeout, apiv1.log)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (apiv1 *v1) Serve(ctx context.Context, addr string, v1 api.API) error {
	apiv1.Register(v1)

	srv := &http.Server{
		Addr:    addr,
		Handler: v1.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	apiv1.log.Info("listening on: ", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
