package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

func TestOutboxRepository_EnqueueAndPull(t *testing.T) {
	repo := NewOutboxRepository()

	msg, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "12",
		EventType:     "order.received",
		Payload:       []byte(`{"order_id":12}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected generated message id")
	}

	pending, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "order.received" {
		t.Fatalf("unexpected pending messages: %+v", pending)
	}

	if err := repo.MarkSent(msg.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	pending, err = repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending after sent: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty backlog, got %+v", pending)
	}

	if err := repo.MarkSent("unknown-id"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish for unknown id, got %v", err)
	}
}

func TestOutboxRepository_Stats(t *testing.T) {
	repo := NewOutboxRepository()

	empty, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if empty.PendingCount != 0 || !empty.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats for empty backlog: %+v", empty)
	}

	before := time.Now().UTC()
	first, _ := repo.Enqueue(domain.OutboxMessage{EventType: "order.received"})
	if _, err := repo.Enqueue(domain.OutboxMessage{EventType: "order.confirmed"}); err != nil {
		t.Fatalf("enqueue second: %v", err)
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 2 {
		t.Fatalf("expected 2 pending, got %d", stats.PendingCount)
	}
	if stats.OldestPendingAt.Before(before.Add(-time.Second)) {
		t.Fatalf("unexpected oldest pending timestamp: %s", stats.OldestPendingAt)
	}

	if err := repo.MarkFailed(first.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	stats, err = repo.Stats()
	if err != nil {
		t.Fatalf("stats after failure: %v", err)
	}
	if stats.PendingCount != 1 {
		t.Fatalf("failed message must leave backlog, got %d pending", stats.PendingCount)
	}
}
