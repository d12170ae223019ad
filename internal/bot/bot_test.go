package bot

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/wolfsburgpt/ticket-bot/internal/logger"
	"github.com/wolfsburgpt/ticket-bot/internal/telegram"
	"github.com/wolfsburgpt/ticket-bot/internal/watch"
)

type fakeClient struct {
	batches [][]telegram.Update
	calls   int
	cancel  context.CancelFunc

	replies map[int64][]string
	offsets []int
}

func (f *fakeClient) GetUpdates(ctx context.Context, offset, timeoutSeconds int) ([]telegram.Update, error) {
	f.offsets = append(f.offsets, offset)
	if f.calls >= len(f.batches) {
		f.cancel()
		return nil, ctx.Err()
	}
	batch := f.batches[f.calls]
	f.calls++
	return batch, nil
}

func (f *fakeClient) SendTo(chatID int64, text string) error {
	if f.replies == nil {
		f.replies = make(map[int64][]string)
	}
	f.replies[chatID] = append(f.replies[chatID], text)
	return nil
}

func commandUpdate(id int, chatID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: id,
		Message: &telegram.Message{
			Text: text,
			Chat: telegram.Chat{ID: chatID, Type: "private"},
			From: telegram.User{ID: 1, FirstName: "Ana"},
		},
	}
}

func runBot(t *testing.T, state *watch.State, batches ...[]telegram.Update) *fakeClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeClient{batches: batches, cancel: cancel}
	b := New(client, state, logger.New(logger.LevelError, io.Discard))

	if err := b.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	return client
}

func TestBotStatusCommand(t *testing.T) {
	state := watch.NewState()
	state.BeginCheck()
	state.BeginCheck()

	client := runBot(t, state, []telegram.Update{commandUpdate(10, 99, "/status")})

	replies := client.replies[99]
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %v", client.replies)
	}
	if !strings.HasPrefix(replies[0], "Bot Status:\nUptime: ") {
		t.Errorf("unexpected status reply: %q", replies[0])
	}
	if !strings.Contains(replies[0], "Checks: 2") {
		t.Errorf("status missing check count: %q", replies[0])
	}
	if !strings.Contains(replies[0], "Target Announced: false") {
		t.Errorf("status missing announced flag: %q", replies[0])
	}
}

func TestBotResetCommand(t *testing.T) {
	state := watch.NewState()
	state.MarkAnnounced()

	client := runBot(t, state, []telegram.Update{commandUpdate(10, 99, "/reset")})

	if state.Announced() {
		t.Error("reset command should clear the announced flag")
	}
	if replies := client.replies[99]; len(replies) != 1 || replies[0] != "Target announcement reset." {
		t.Errorf("unexpected replies: %v", client.replies)
	}
}

func TestBotResetIdempotent(t *testing.T) {
	state := watch.NewState()

	runBot(t, state, []telegram.Update{
		commandUpdate(10, 99, "/reset"),
		commandUpdate(11, 99, "/reset"),
	})

	if state.Announced() {
		t.Error("state must stay not-announced")
	}
}

func TestBotIgnoresUnknownText(t *testing.T) {
	state := watch.NewState()

	client := runBot(t, state, []telegram.Update{
		commandUpdate(10, 99, "hello there"),
		commandUpdate(11, 99, "/unknown"),
		{UpdateID: 12}, // no message at all
	})

	if len(client.replies) != 0 {
		t.Errorf("expected no replies, got %v", client.replies)
	}
}

func TestBotAdvancesOffset(t *testing.T) {
	state := watch.NewState()

	client := runBot(t, state,
		[]telegram.Update{commandUpdate(10, 99, "/status"), commandUpdate(11, 99, "/status")},
		[]telegram.Update{commandUpdate(12, 99, "/status")},
	)

	// First poll starts at 0, then continues past each processed batch.
	want := []int{0, 12, 13}
	if len(client.offsets) != len(want) {
		t.Fatalf("offsets = %v, want %v", client.offsets, want)
	}
	for i := range want {
		if client.offsets[i] != want[i] {
			t.Errorf("offsets[%d] = %d, want %d", i, client.offsets[i], want[i])
		}
	}
}

func TestCommandParsing(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/status", "status"},
		{"!status", "status"},
		{"/reset", "reset"},
		{"  /reset  ", "reset"},
		{"/STATUS", "status"},
		{"/status@ticket_watch_bot", "status"},
		{"status", ""},
		{"", ""},
		{"/", ""},
		{"hello", ""},
	}

	for _, tt := range tests {
		if got := command(tt.text); got != tt.want {
			t.Errorf("command(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	st := watch.Status{
		Uptime:    90*time.Minute + 12*time.Second,
		Checks:    42,
		Announced: true,
	}
	want := "Bot Status:\nUptime: 1h30m12s\nChecks: 42\nTarget Announced: true"
	if got := FormatStatus(st); got != want {
		t.Errorf("FormatStatus() = %q, want %q", got, want)
	}
}
