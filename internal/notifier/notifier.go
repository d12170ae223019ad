package notifier

// Alert describes an availability hit to broadcast beyond the main channel.
type Alert struct {
	Day   string
	Month string
	URL   string
}

// Alerter mirrors the availability alert to an additional destination. Mirror
// failures are logged by the watcher and never block the channel send.
type Alerter interface {
	Announce(a Alert) error
}
