package main

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/internal/config"
	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/browser/cdpbrowser"
	"github.com/zdunecki/domobject/pkg/browser/htmldom"
	"github.com/zdunecki/domobject/pkg/browser/rodbrowser"
	"github.com/zdunecki/domobject/pkg/pubsub"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

func backends(cfg *config.Config) browser.Registry {
	return browser.Registry{
		browser.BackendHTML: htmldom.New(
			htmldom.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		),
		browser.BackendRod: rodbrowser.New(rodbrowser.Config{
			Remote:         cfg.Browser.Remote,
			Headless:       cfg.Browser.Headless,
			ConnectRetries: cfg.Browser.ConnectRetries,
		}),
		browser.BackendChromeDP: cdpbrowser.New(cdpbrowser.Config{
			Remote:   cfg.Browser.Remote,
			Headless: cfg.Browser.Headless,
		}),
	}
}

func newPubSub(cfg config.PubSub) (pubsub.PubSub, error) {
	switch cfg.Driver {
	case config.PubSubNATS:
		return pubsub.NewNATS(cfg.URL)
	case config.PubSubKafka:
		return pubsub.NewKafka(cfg.Brokers, pubsub.WithGroupID(cfg.GroupID))
	case config.PubSubNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownPubSub, cfg.Driver)
	}
}

// remoteSchemes are the only schemes served to api and pubsub callers.
var remoteSchemes = []string{"http", "https"}

// newService builds the snapshot service. The returned pubsub is nil when no driver is set.
func newService(cfg *config.Config, extra ...snapshot.Option) (*snapshot.Service, pubsub.PubSub, error) {
	opts := []snapshot.Option{
		snapshot.WithMaxDepth(cfg.MaxDepth),
		snapshot.WithLogger(log.WithField("component", "snapshot")),
	}
	opts = append(opts, extra...)

	for name, opener := range backends(cfg) {
		opts = append(opts, snapshot.WithBackend(name, opener))
	}
	opts = append(opts, snapshot.WithDefaultBackend(cfg.Backend))

	ps, err := newPubSub(cfg.PubSub)
	if err != nil {
		return nil, nil, err
	}
	if ps != nil {
		opts = append(opts, snapshot.WithPublisher(ps, cfg.PubSub.ResultTopic))
	}

	svc, err := snapshot.New(opts...)
	if err != nil {
		if ps != nil {
			ps.Close()
		}
		return nil, nil, err
	}

	return svc, ps, nil
}
