package dataloader

import (
	"time"
)

// Observer receives loader activity, used for metrics.
type Observer interface {
	ObserveDispatch(name LoaderName, keys int, duration time.Duration, err error)
	ObserveInvalidate(requested []LoaderName, cleared []LoaderName)
}

type NopObserver struct{}

func (NopObserver) ObserveDispatch(LoaderName, int, time.Duration, error) {}

func (NopObserver) ObserveInvalidate([]LoaderName, []LoaderName) {}
