// Package bot serves the chat commands (/status, /reset) over long polling,
// sharing the watcher's state. Command handling never fails from the user's
// point of view; delivery problems only show up in the log.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/wolfsburgpt/ticket-bot/internal/logger"
	"github.com/wolfsburgpt/ticket-bot/internal/metrics"
	"github.com/wolfsburgpt/ticket-bot/internal/telegram"
	"github.com/wolfsburgpt/ticket-bot/internal/watch"
)

// pollTimeout is the server-side hold time for one getUpdates long poll.
const pollTimeout = 30

// Client is the slice of the telegram client the command loop needs.
type Client interface {
	GetUpdates(ctx context.Context, offset, timeoutSeconds int) ([]telegram.Update, error)
	SendTo(chatID int64, text string) error
}

// Bot dispatches incoming chat commands against the shared watcher state.
type Bot struct {
	client Client
	state  *watch.State
	log    *logger.Logger
}

// New creates a command bot over the given client and shared state.
func New(client Client, state *watch.State, log *logger.Logger) *Bot {
	return &Bot{
		client: client,
		state:  state,
		log:    log,
	}
}

// Run long-polls for updates until ctx is cancelled. Poll failures back off
// exponentially and never terminate the loop.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := b.client.GetUpdates(ctx, offset, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := bo.NextBackOff()
			b.log.Error("getting updates", logger.Fields{"retry_in": wait.String()}, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		bo.Reset()

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// handleMessage runs one command and replies to the chat it came from.
// Unrecognized text is ignored.
func (b *Bot) handleMessage(msg *telegram.Message) {
	switch command(msg.Text) {
	case "status":
		b.reply(msg.Chat.ID, FormatStatus(b.state.Snapshot()))
	case "reset":
		b.state.Reset()
		metrics.SetAnnounced(false)
		b.log.Info("announcement reset", logger.Fields{"chat": msg.Chat.ID})
		b.reply(msg.Chat.ID, "Target announcement reset.")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.client.SendTo(chatID, text); err != nil {
		b.log.Error("sending command reply", logger.Fields{"chat": chatID}, err)
	}
}

// command normalizes message text to a bare command name. Both the "/name"
// and "!name" prefixes are accepted, with an optional @botname suffix.
func command(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 2 || (text[0] != '/' && text[0] != '!') {
		return ""
	}
	name := text[1:]
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}

// FormatStatus renders the status command reply.
func FormatStatus(st watch.Status) string {
	return fmt.Sprintf("Bot Status:\nUptime: %s\nChecks: %d\nTarget Announced: %t",
		st.Uptime.Round(time.Second), st.Checks, st.Announced)
}
