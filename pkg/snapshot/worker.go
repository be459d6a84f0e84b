package snapshot

import (
	"context"
	"time"

	"github.com/zdunecki/domobject/pkg/pubsub"
)

// Serve takes a snapshot for every request read from topic until ctx is done. Failed requests
// are logged and skipped.
func (s *Service) Serve(ctx context.Context, sub pubsub.Subscriber, topic string, timeout time.Duration) error {
	return sub.Subscribe(ctx, topic, func(data []byte) {
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.log.Errorf("invalid request: %v", err)
			return
		}

		reqCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if _, err := s.Take(reqCtx, req); err != nil {
			s.log.WithField("url", req.URL).Error(err)
		}
	})
}
