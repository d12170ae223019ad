package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfsburgpt/ticket-bot/internal/event"
	"github.com/wolfsburgpt/ticket-bot/internal/logger"
	"github.com/wolfsburgpt/ticket-bot/internal/metrics"
	"github.com/wolfsburgpt/ticket-bot/internal/notifier"
)

// Messenger posts text to the announcement channel. A failed send is the
// caller's problem; implementations make a single attempt.
type Messenger interface {
	SendMessage(text string) error
}

// Scraper produces the current list of date entries from the ticket page.
type Scraper interface {
	FetchEntries() ([]event.Entry, error)
}

// Config carries the watcher's immutable settings. Target labels must be
// lower-cased already (config.Load does this).
type Config struct {
	URL         string
	TargetDay   string
	TargetMonth string
	Interval    time.Duration
	Mention     string
}

// Watcher drives the scrape cycle: gate check, fetch, extract, detect,
// announce, digest. One cycle fully completes or fails before the next starts.
type Watcher struct {
	cfg       Config
	gate      *Gate
	scraper   Scraper
	messenger Messenger
	alerters  []notifier.Alerter
	state     *State
	log       *logger.Logger

	now func() time.Time
}

// New creates a watcher. Alerters receive a copy of the availability alert in
// addition to the channel message; they never gate the channel send.
func New(cfg Config, gate *Gate, sc Scraper, m Messenger, state *State, log *logger.Logger, alerters ...notifier.Alerter) *Watcher {
	return &Watcher{
		cfg:       cfg,
		gate:      gate,
		scraper:   sc,
		messenger: m,
		alerters:  alerters,
		state:     state,
		log:       log,
		now:       time.Now,
	}
}

// Run executes scrape cycles until ctx is cancelled. Every cycle is followed by
// exactly one interval of sleep, whether the gate was open or the cycle failed.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watcher started", logger.Fields{
		"url":      w.cfg.URL,
		"target":   w.targetLabel(),
		"interval": w.cfg.Interval.String(),
	})

	for {
		w.runCycle()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
		}
	}
}

// runCycle performs one gate-check-fetch-detect-announce pass. Fetch and parse
// failures are logged and leave all state untouched; the next cycle retries
// naturally.
func (w *Watcher) runCycle() {
	if !w.gate.Open(w.now()) {
		w.log.Info("outside operating hours, sleeping", nil)
		return
	}

	count := w.state.BeginCheck()
	metrics.ChecksTotal.Inc()
	w.log.Info("check attempt", logger.Fields{"count": count})

	entries, err := w.scraper.FetchEntries()
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		w.log.Error("check failed", logger.Fields{"url": w.cfg.URL}, err)
		return
	}

	matchedURL, found := event.Match(entries, w.cfg.TargetDay, w.cfg.TargetMonth)
	if found && !w.state.Announced() {
		w.announce(matchedURL)
	}

	digest := event.BuildDigest(entries)
	if w.state.UpdateDigest(digest) {
		if err := w.messenger.SendMessage(digest.Message()); err != nil {
			w.log.Error("sending digest", nil, err)
		} else {
			metrics.DigestUpdatesTotal.Inc()
			w.log.Info("updated ticket dates sent", logger.Fields{"entries": len(entries)})
		}
	}

	if found {
		w.log.Info("target tickets are available", logger.Fields{"target": w.targetLabel()})
	} else {
		w.log.Info("target tickets not found yet", logger.Fields{"target": w.targetLabel()})
	}
}

// announce sends the one-time availability alert. The announced flag flips only
// after a successful channel send, so a dropped message is retried next cycle.
func (w *Watcher) announce(matchedURL string) {
	alert := fmt.Sprintf("🚨 Tickets for **%s** are now available! %s\n%s",
		w.targetLabel(), w.cfg.Mention, matchedURL)

	if err := w.messenger.SendMessage(alert); err != nil {
		w.log.Error("sending alert", logger.Fields{"url": matchedURL}, err)
		return
	}

	w.state.MarkAnnounced()
	metrics.AlertsTotal.Inc()
	metrics.SetAnnounced(true)
	w.log.Info("alert sent", logger.Fields{"url": matchedURL})

	for _, a := range w.alerters {
		if err := a.Announce(notifier.Alert{
			Day:   w.cfg.TargetDay,
			Month: w.cfg.TargetMonth,
			URL:   matchedURL,
		}); err != nil {
			w.log.Error("mirroring alert", nil, err)
		}
	}
}

func (w *Watcher) targetLabel() string {
	return fmt.Sprintf("%s %s", strings.ToUpper(w.cfg.TargetMonth), strings.ToUpper(w.cfg.TargetDay))
}
