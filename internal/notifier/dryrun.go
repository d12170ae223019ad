package notifier

import (
	"fmt"
	"io"
)

// DryRun prints messages instead of delivering them. It stands in for both the
// channel messenger and an alert mirror in --dry-run mode.
type DryRun struct {
	out io.Writer
}

// NewDryRun creates a dry-run notifier writing to out.
func NewDryRun(out io.Writer) *DryRun {
	return &DryRun{out: out}
}

// SendMessage prints the channel message that would be sent.
func (n *DryRun) SendMessage(text string) error {
	fmt.Fprintf(n.out, "--- message ---\n%s\n\n(Length: %d characters)\n\n", text, len([]rune(text)))
	return nil
}

// Announce prints the alert that would be mirrored.
func (n *DryRun) Announce(a Alert) error {
	fmt.Fprintf(n.out, "--- alert ---\n%s\n\n", formatTweet(a))
	return nil
}
