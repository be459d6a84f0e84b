// Package snapshot opens a page on one of the configured backends, walks it and hands the
// encoded result to a publisher.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/domobject"
	"github.com/zdunecki/domobject/pkg/pubsub"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Request struct {
	URL     string `json:"url" schema:"url"`
	Backend string `json:"backend,omitempty" schema:"backend"`

	// MaxDepth overrides the service depth limit when positive.
	MaxDepth int `json:"maxDepth,omitempty" schema:"maxDepth"`
}

type Option func(*Service)

func WithBackend(name string, opener browser.Opener) Option {
	return func(s *Service) {
		s.backends[name] = opener
		if s.defaultBackend == "" {
			s.defaultBackend = name
		}
	}
}

// WithDefaultBackend selects the backend used by requests that name none.
func WithDefaultBackend(name string) Option {
	return func(s *Service) {
		s.defaultBackend = name
	}
}

func WithPublisher(p pubsub.Publisher, topic string) Option {
	return func(s *Service) {
		s.publisher = p
		s.topic = topic
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *Service) {
		s.maxDepth = depth
	}
}

// WithSchemes limits the url schemes Take accepts. Local paths count as file. Every scheme the
// backends support is accepted when no scheme is given.
func WithSchemes(schemes ...string) Option {
	return func(s *Service) {
		for _, scheme := range schemes {
			s.schemes[strings.ToLower(scheme)] = true
		}
	}
}

func WithLogger(entry *log.Entry) Option {
	return func(s *Service) {
		s.log = entry
	}
}

type Service struct {
	backends       browser.Registry
	defaultBackend string
	maxDepth       int
	schemes        map[string]bool

	publisher pubsub.Publisher
	topic     string

	log *log.Entry
}

func New(opts ...Option) (*Service, error) {
	s := &Service{
		backends: make(browser.Registry),
		schemes:  make(map[string]bool),
		log:      log.WithField("component", "snapshot"),
	}

	for _, o := range opts {
		o(s)
	}

	if len(s.backends) == 0 {
		return nil, ErrNoBackends
	}
	if _, err := s.backends.Get(s.defaultBackend); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) Backends() []string {
	return s.backends.Names()
}

// Take walks req.URL and publishes the result when a publisher is configured.
func (s *Service) Take(ctx context.Context, req Request) (*domobject.Result, error) {
	if req.URL == "" {
		return nil, ErrURLIsRequired
	}
	if err := s.allowed(req.URL); err != nil {
		return nil, err
	}

	name := req.Backend
	if name == "" {
		name = s.defaultBackend
	}

	opener, err := s.backends.Get(name)
	if err != nil {
		return nil, err
	}

	session, err := opener.Open(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req.URL, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.log.Warnf("close %s session: %v", name, err)
		}
	}()

	maxDepth := s.maxDepth
	if req.MaxDepth > 0 {
		maxDepth = req.MaxDepth
	}

	result, err := domobject.Init(ctx, session,
		domobject.WithLogger(s.log.WithField("url", req.URL)),
		domobject.WithMaxDepth(maxDepth),
	)
	if err != nil {
		return nil, err
	}

	s.log.WithField("backend", name).Infof("snapshot of %s taken", session.URL())

	if s.publisher != nil {
		if err := s.publish(ctx, result); err != nil {
			return result, fmt.Errorf("publish: %w", err)
		}
	}

	return result, nil
}

func (s *Service) publish(ctx context.Context, result *domobject.Result) error {
	var buf bytes.Buffer
	if err := Encode(&buf, result, false); err != nil {
		return err
	}
	return s.publisher.Publish(ctx, s.topic, buf.Bytes())
}

// Encode writes result as JSON.
func Encode(w io.Writer, result *domobject.Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func (s *Service) allowed(target string) error {
	if len(s.schemes) == 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(target); err == nil && u.Scheme != "" {
		scheme = strings.ToLower(u.Scheme)
	}

	if !s.schemes[scheme] {
		return fmt.Errorf("%w: %s", browser.ErrSchemeNotAllowed, scheme)
	}

	return nil
}
