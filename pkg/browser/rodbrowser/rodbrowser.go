// Package rodbrowser serves the dom capabilities from a live Chrome driven by go-rod.
package rodbrowser

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/browser"
)

var DefaultConnectRetries uint64 = 3

type Config struct {
	// Remote is a DevTools control URL; a local Chrome is launched when empty.
	Remote   string
	Headless bool

	ConnectRetries uint64

	Logger *log.Entry
}

type Backend struct {
	cfg Config
	log *log.Entry
}

func New(cfg Config) *Backend {
	if cfg.ConnectRetries == 0 {
		cfg.ConnectRetries = DefaultConnectRetries
	}

	l := cfg.Logger
	if l == nil {
		l = log.WithField("component", "rodbrowser")
	}

	return &Backend{
		cfg: cfg,
		log: l,
	}
}

func (b *Backend) Open(ctx context.Context, target string) (browser.Session, error) {
	s := &Session{log: b.log}

	controlURL := b.cfg.Remote
	if controlURL == "" {
		s.launcher = launcher.New().Context(ctx).Headless(b.cfg.Headless)

		u, err := s.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}

	s.browser = rod.New().ControlURL(controlURL).Context(ctx)

	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), b.cfg.ConnectRetries), ctx)
	if err := backoff.Retry(s.browser.Connect, retry); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("connect %s: %w", controlURL, err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open page %s: %w", target, err)
	}
	s.page = page

	if err := page.Context(ctx).WaitLoad(); err != nil {
		s.Close()
		return nil, fmt.Errorf("wait load %s: %w", target, err)
	}

	res, err := page.Context(ctx).Eval(browser.ScriptLocation)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.url = res.Value.Str()

	b.log.Infof("opened %s", s.url)

	return s, nil
}

// Session is one page of a connected browser.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	url      string

	log *log.Entry
}

func (s *Session) URL() string {
	return s.url
}

func (s *Session) Close() error {
	var result error

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if s.browser != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.browser.Context(closeCtx).Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	s.cleanup()

	return result
}

func (s *Session) cleanup() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}
