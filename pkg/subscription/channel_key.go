package subscription

import (
	"path"
	"strings"
)

type channelKey struct {
	id      string
	channel string
}

func newChannelKey(id string, channel string) channelKey {
	return channelKey{
		id:      id,
		channel: channel,
	}
}

// Channel joins chunks into a channel name, team/42 and Team.42 name the same channel.
func Channel(chunks ...string) string {
	return strings.ReplaceAll(strings.ToLower(path.Join(chunks...)), "/", ".")
}
