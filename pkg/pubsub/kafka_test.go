package pubsub

import (
	"errors"
	"testing"
)

func TestNewKafkaWithoutBrokers(t *testing.T) {
	if _, err := NewKafka(nil); !errors.Is(err, ErrNoBrokers) {
		t.Errorf("expected ErrNoBrokers, got %v", err)
	}
}

func TestKafkaWriterPerTopic(t *testing.T) {
	ps, err := NewKafka([]string{"localhost:9092"}, WithGroupID("workers"))
	if err != nil {
		t.Fatal(err)
	}
	k := ps.(*kafkaPubSub)

	if k.groupID != "workers" {
		t.Errorf("expected group workers, got %q", k.groupID)
	}

	a := k.writer("snapshots")
	if k.writer("snapshots") != a {
		t.Error("expected writer to be reused for the same topic")
	}
	if k.writer("requests") == a {
		t.Error("expected separate writer for another topic")
	}
	if a.Topic != "snapshots" {
		t.Errorf("expected topic snapshots, got %q", a.Topic)
	}

	if err := ps.Close(); err != nil {
		t.Error(err)
	}
	if len(k.writers) != 0 {
		t.Errorf("expected writers to be released, got %d", len(k.writers))
	}
}
