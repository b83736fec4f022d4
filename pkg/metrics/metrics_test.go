package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
)

func TestLoaderObserver(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer, err := NewLoaderObserver(registry)
	if err != nil {
		t.Fatalf("failed to create observer: %v", err)
	}

	observer.ObserveDispatch("teams", 3, time.Millisecond, nil)
	observer.ObserveDispatch("teams", 2, time.Millisecond, errors.New("storage unavailable"))
	observer.ObserveInvalidate([]dataloader.LoaderName{"teams"}, []dataloader.LoaderName{"teams", "teamsByOrgId"})

	if got := testutil.ToFloat64(observer.dispatchedKeys.WithLabelValues("teams")); got != 5 {
		t.Fatalf("expected 5 dispatched keys, got %v", got)
	}
	if got := testutil.ToFloat64(observer.dispatchErrors.WithLabelValues("teams")); got != 1 {
		t.Fatalf("expected 1 dispatch error, got %v", got)
	}
	if got := testutil.ToFloat64(observer.invalidations.WithLabelValues("teamsByOrgId")); got != 1 {
		t.Fatalf("expected 1 invalidation of teamsByOrgId, got %v", got)
	}
	if got := testutil.CollectAndCount(observer.dispatchLatency); got != 1 {
		t.Fatalf("expected 1 latency series, got %d", got)
	}

	if _, err := NewLoaderObserver(registry); err == nil {
		t.Fatalf("expected registering twice to fail")
	}
}
