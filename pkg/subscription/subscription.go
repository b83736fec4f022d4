package subscription

import (
	"context"
)

// Subscription fans published payloads out to every subscriber whose channel pattern matches.
// Channels are dot separated paths, patterns use path.Match syntax per segment.
type Subscription interface {
	Notify(bytes []byte, channel string) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	HasSubscribers(channel string) bool
}
