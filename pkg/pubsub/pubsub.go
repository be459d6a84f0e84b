// Package pubsub moves snapshot requests and results through a message broker.
package pubsub

import "context"

type Publisher interface {
	Publish(ctx context.Context, topic string, data []byte) error
	Close() error
}

// Subscriber delivers messages to cb until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, cb func([]byte)) error
	Close() error
}

type PubSub interface {
	Publisher
	Subscriber
}
