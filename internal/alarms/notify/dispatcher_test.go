package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lgb-dashboard/internal/analytics/application/events"
)

type collectingNotifier struct {
	mu       sync.Mutex
	received []events.AlertsRaised
	err      error
}

func (c *collectingNotifier) NotifyAlerts(_ context.Context, event events.AlertsRaised) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.received = append(c.received, event)
	return c.err
}

func (c *collectingNotifier) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.received)
}

func TestDispatcherDeliversInBackground(t *testing.T) {
	next := &collectingNotifier{err: errors.New("webhook down")}
	dispatcher, err := NewDispatcher(next, 0, nil)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		if err := dispatcher.NotifyAlerts(context.Background(), sampleEvent(time.Now())); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for next.Count() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 3 deliveries, got %d", next.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	dispatcher, err := NewDispatcher(&collectingNotifier{}, 1, nil)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	if err := dispatcher.NotifyAlerts(context.Background(), sampleEvent(time.Now())); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := dispatcher.NotifyAlerts(context.Background(), sampleEvent(time.Now())); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestNewDispatcherNilNotifier(t *testing.T) {
	if _, err := NewDispatcher(nil, 1, nil); err == nil {
		t.Fatalf("expected error for nil notifier")
	}
}
