package pubsub

import (
	"context"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type natsPubSub struct {
	client *nats.Conn
	log    *log.Entry
}

func NewNATS(url string, opts ...nats.Option) (PubSub, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url, append([]nats.Option{nats.Name("domobject")}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &natsPubSub{
		client: nc,
		log:    log.WithField("component", "pubsub.nats"),
	}, nil
}

func (n *natsPubSub) Publish(ctx context.Context, subj string, data []byte) error {
	if err := n.client.Publish(subj, data); err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		return n.client.Flush()
	}
	return n.client.FlushWithContext(ctx)
}

func (n *natsPubSub) Subscribe(ctx context.Context, subj string, cb func([]byte)) error {
	sub, err := n.client.Subscribe(subj, func(msg *nats.Msg) {
		cb(msg.Data)
	})
	if err != nil {
		return err
	}
	if err := n.client.Flush(); err != nil {
		sub.Unsubscribe()
		return err
	}

	n.log.Infof("subscribed to %s", subj)

	<-ctx.Done()

	return sub.Unsubscribe()
}

func (n *natsPubSub) Close() error {
	n.client.Close()
	return nil
}
