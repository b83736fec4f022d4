package subscription

import (
	"context"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case bytes, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed unexpectedly")
		}
		return bytes
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for payload")
	}
	return nil
}

func TestInMemorySubscriptionDeliversMatchingChannels(t *testing.T) {
	s := NewInMemorySubscription()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	teamChan, err := s.Subscribe(ctx, Channel("team", "t1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	allChan, err := s.Subscribe(ctx, Channel("team", "*"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Notify([]byte("archived"), Channel("Team", "T1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := string(receive(t, teamChan)); got != "archived" {
		t.Fatalf("unexpected payload %q", got)
	}
	if got := string(receive(t, allChan)); got != "archived" {
		t.Fatalf("unexpected payload %q", got)
	}

	if err := s.Notify([]byte("other"), Channel("team", "t2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(receive(t, allChan)); got != "other" {
		t.Fatalf("unexpected payload %q", got)
	}
	select {
	case bytes := <-teamChan:
		t.Fatalf("unexpected payload for another team: %q", bytes)
	default:
	}
}

func TestInMemorySubscriptionUnsubscribesOnCancel(t *testing.T) {
	s := NewInMemorySubscription()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Subscribe(ctx, Channel("team", "t1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasSubscribers(Channel("team", "t1")) {
		t.Fatalf("expected a subscriber")
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for unsubscribe")
	}

	if s.HasSubscribers(Channel("team", "t1")) {
		t.Fatalf("expected no subscribers after cancel")
	}
}

func TestInMemorySubscriptionDropsPayloadsForSlowSubscribers(t *testing.T) {
	s := NewInMemorySubscription()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Subscribe(ctx, "slow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < observerBufferSize*2; i++ {
		if err := s.Notify([]byte("payload"), "slow"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(ch) != observerBufferSize {
		t.Fatalf("expected a full buffer of %d payloads, got %d", observerBufferSize, len(ch))
	}
}
