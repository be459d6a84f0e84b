package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

var ErrNoBrokers = errors.New("no kafka brokers")

type KafkaOption func(*kafkaPubSub)

// WithGroupID makes subscribers join a consumer group so a topic is shared between workers.
func WithGroupID(id string) KafkaOption {
	return func(k *kafkaPubSub) {
		k.groupID = id
	}
}

type kafkaPubSub struct {
	brokers []string
	groupID string

	mu      sync.Mutex
	writers map[string]*kafka.Writer

	log *log.Entry
}

func NewKafka(brokers []string, opts ...KafkaOption) (PubSub, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	k := &kafkaPubSub{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
		log:     log.WithField("component", "pubsub.kafka"),
	}

	for _, o := range opts {
		o(k)
	}

	return k, nil
}

func (k *kafkaPubSub) writer(topic string) *kafka.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	w, ok := k.writers[topic]
	if !ok {
		w = &kafka.Writer{
			Addr:     kafka.TCP(k.brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
		k.writers[topic] = w
	}
	return w
}

func (k *kafkaPubSub) Publish(ctx context.Context, topic string, data []byte) error {
	return k.writer(topic).WriteMessages(ctx, kafka.Message{
		Value: data,
	})
}

func (k *kafkaPubSub) Subscribe(ctx context.Context, topic string, cb func([]byte)) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		GroupID: k.groupID,
		Topic:   topic,
	})
	defer r.Close()

	k.log.Infof("subscribed to %s", topic)

	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		cb(msg.Value)
	}
}

func (k *kafkaPubSub) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var result error
	for topic, w := range k.writers {
		if err := w.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		delete(k.writers, topic)
	}
	return result
}
