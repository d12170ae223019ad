// Package watch contains the scheduling core: the operating-hours gate, the
// shared announcement state, and the scrape loop that ties fetching, detection,
// and notification together.
package watch
