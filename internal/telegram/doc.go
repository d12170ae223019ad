// Package telegram implements the chat platform client: message delivery to the
// announcement channel and long polling for incoming commands.
//
// Outgoing messages are truncated to MaxMessageLen characters. Delivery is
// best-effort with a single attempt; callers decide whether a failed send
// matters.
package telegram
