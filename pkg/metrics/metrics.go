package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
)

var _ dataloader.Observer = (*LoaderObserver)(nil)

// LoaderObserver exports loader activity as prometheus metrics, labeled by loader name.
type LoaderObserver struct {
	dispatchLatency *prometheus.HistogramVec
	dispatchedKeys  *prometheus.CounterVec
	dispatchErrors  *prometheus.CounterVec
	invalidations   *prometheus.CounterVec
}

func NewLoaderObserver(registerer prometheus.Registerer) (*LoaderObserver, error) {
	o := &LoaderObserver{
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "teamboard_loader_dispatch_latency_milliseconds",
			Help:    "Batch dispatch latency in milliseconds by loader",
			Buckets: prometheus.ExponentialBuckets(0.1, 2.0, 16),
		}, []string{"loader"}),
		dispatchedKeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamboard_loader_dispatched_keys_total",
			Help: "Total number of keys dispatched by loader",
		}, []string{"loader"}),
		dispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamboard_loader_dispatch_errors_total",
			Help: "Total number of failed batch dispatches by loader",
		}, []string{"loader"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamboard_loader_invalidations_total",
			Help: "Total number of times a loader was cleared by invalidation",
		}, []string{"loader"}),
	}

	for _, collector := range []prometheus.Collector{o.dispatchLatency, o.dispatchedKeys, o.dispatchErrors, o.invalidations} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *LoaderObserver) ObserveDispatch(name dataloader.LoaderName, keys int, duration time.Duration, err error) {
	loader := string(name)
	o.dispatchLatency.WithLabelValues(loader).Observe(float64(duration) / float64(time.Millisecond))
	o.dispatchedKeys.WithLabelValues(loader).Add(float64(keys))
	if err != nil {
		o.dispatchErrors.WithLabelValues(loader).Inc()
	}
}

func (o *LoaderObserver) ObserveInvalidate(_ []dataloader.LoaderName, cleared []dataloader.LoaderName) {
	for _, name := range cleared {
		o.invalidations.WithLabelValues(string(name)).Inc()
	}
}
