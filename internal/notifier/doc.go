// Package notifier provides notification mirrors for the availability alert.
//
// The main channel message always goes through the telegram client; alerters
// are optional additional destinations (Twitter, or stdout in dry-run mode).
package notifier
