// Package cdpbrowser serves the dom capabilities over the DevTools protocol with chromedp.
package cdpbrowser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/browser"
)

type Config struct {
	// Remote is a DevTools websocket URL; a local Chrome is started when empty.
	Remote   string
	Headless bool

	Logger *log.Entry
}

type Backend struct {
	cfg Config
	log *log.Entry
}

func New(cfg Config) *Backend {
	l := cfg.Logger
	if l == nil {
		l = log.WithField("component", "cdpbrowser")
	}

	return &Backend{
		cfg: cfg,
		log: l,
	}
}

func (b *Backend) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.Remote != "" {
		return chromedp.NewRemoteAllocator(ctx, b.cfg.Remote)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// Open starts a tab that lives until Close, independent of ctx cancellation.
func (b *Backend) Open(ctx context.Context, target string) (browser.Session, error) {
	allocCtx, cancelAlloc := b.allocator(context.Background())
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &Session{
		tab: tabCtx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
		log: b.log,
	}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if ev, ok := ev.(*runtime.EventExceptionThrown); ok {
			s.log.Debug(ev.ExceptionDetails.Error())
		}
	})

	var location string
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Navigate(target).Do(ctx); err != nil {
			return err
		}
		return s.evaluate(ctx, browser.ScriptLocation, &location)
	}))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open page %s: %w", target, err)
	}
	s.url = location

	b.log.Infof("opened %s", s.url)

	return s, nil
}

type Session struct {
	tab    context.Context
	cancel context.CancelFunc
	url    string

	log *log.Entry
}

func (s *Session) URL() string {
	return s.url
}

func (s *Session) Close() error {
	err := chromedp.Cancel(s.tab)
	s.cancel()
	return err
}

// run executes action on the tab and stops it when ctx is done.
func (s *Session) run(ctx context.Context, action chromedp.Action) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.tab, action)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
