package subscription

import (
	"context"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const observerBufferSize = 16

type inMemorySubscription struct {
	observers     map[channelKey]chan []byte
	observersLock sync.RWMutex
}

func NewInMemorySubscription() Subscription {
	return &inMemorySubscription{
		observers: make(map[channelKey]chan []byte),
	}
}

// Notify never blocks on a slow subscriber, a subscriber with a full buffer misses the payload.
func (s *inMemorySubscription) Notify(bytes []byte, channel string) error {
	s.observersLock.RLock()
	defer s.observersLock.RUnlock()

	channel = Channel(channel)
	for k, v := range s.observers {
		if !matchChannel(k.channel, channel) {
			continue
		}

		select {
		case v <- bytes:
		default:
			logrus.
				WithField("channel", channel).
				WithField("subscriber", k.id).
				Warn("subscriber is not keeping up, dropping payload")
		}
	}
	return nil
}

func (s *inMemorySubscription) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	uuidValue, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	s.observersLock.Lock()
	defer s.observersLock.Unlock()

	key := newChannelKey(uuidValue.String(), Channel(channel))
	observerChan := make(chan []byte, observerBufferSize)
	go func() {
		<-ctx.Done()
		s.unsubscribe(key, observerChan)
	}()

	s.observers[key] = observerChan
	return observerChan, nil
}

func (s *inMemorySubscription) HasSubscribers(channel string) bool {
	s.observersLock.RLock()
	defer s.observersLock.RUnlock()

	if len(channel) == 0 {
		return len(s.observers) != 0
	}

	channel = Channel(channel)
	for k := range s.observers {
		if matchChannel(k.channel, channel) {
			return true
		}
	}
	return false
}

func (s *inMemorySubscription) unsubscribe(key channelKey, observerChan chan<- []byte) {
	s.observersLock.Lock()
	defer s.observersLock.Unlock()

	delete(s.observers, key)
	close(observerChan)
}

func matchChannel(pattern string, channel string) bool {
	match, err := path.Match(pattern, channel)
	if err != nil {
		logrus.
			WithError(err).
			WithField("pattern", pattern).
			WithField("channel", channel).
			Warn("failed to match glob pattern")
	}
	return match
}
