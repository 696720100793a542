package room

import (
	"secretdeck-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages records the most recent game-log entries and pushes them to
// the connected clients
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m

	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "logs",
			Data: messages,
		}
	}
}
