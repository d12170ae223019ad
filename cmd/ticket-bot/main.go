package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wolfsburgpt/ticket-bot/internal/bot"
	"github.com/wolfsburgpt/ticket-bot/internal/config"
	"github.com/wolfsburgpt/ticket-bot/internal/logger"
	"github.com/wolfsburgpt/ticket-bot/internal/metrics"
	"github.com/wolfsburgpt/ticket-bot/internal/notifier"
	"github.com/wolfsburgpt/ticket-bot/internal/scraper"
	"github.com/wolfsburgpt/ticket-bot/internal/telegram"
	"github.com/wolfsburgpt/ticket-bot/internal/watch"
)

var (
	flagConfig   string
	flagBotToken string
	flagChatID   string
	flagDryRun   bool
	flagVerbose  bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket-bot",
		Short: "Watch a ticket page and announce when the target date goes on sale",
		Long: `ticket-bot polls a ticket-sales page on a fixed interval during operating
hours, alerts the configured chat channel the first time the target date shows
up, and posts an updated digest of all listed dates whenever the list changes.
The /status and /reset chat commands inspect and rearm the announcement.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.json", "Path to config file (JSON or YAML)")
	cmd.Flags().StringVar(&flagBotToken, "bot-token", os.Getenv("TICKET_BOT_TOKEN"), "Telegram bot token (or env: TICKET_BOT_TOKEN)")
	cmd.Flags().StringVar(&flagChatID, "chat-id", os.Getenv("TICKET_CHAT_ID"), "Destination chat ID (or env: TICKET_CHAT_ID)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print messages without sending (no credentials needed)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log, closeLog, err := logger.NewWithFile(level, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	gate, err := watch.NewGate(cfg.Timezone)
	if err != nil {
		return err
	}

	state := watch.NewState()
	sc := scraper.New(cfg.URL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		messenger watch.Messenger
		client    *telegram.Client
	)
	if flagDryRun {
		messenger = notifier.NewDryRun(os.Stdout)
	} else {
		if flagBotToken == "" {
			return fmt.Errorf("bot token is required (use --bot-token or TICKET_BOT_TOKEN env var)")
		}
		chatID, err := strconv.ParseInt(flagChatID, 10, 64)
		if err != nil {
			return fmt.Errorf("chat ID must be a number (use --chat-id or TICKET_CHAT_ID env var): %w", err)
		}
		client, err = telegram.NewClient(flagBotToken, chatID)
		if err != nil {
			return err
		}

		// Connectivity barrier before any loop starts.
		username, err := client.GetMe()
		if err != nil {
			return fmt.Errorf("connecting to Telegram: %w", err)
		}
		log.Info("logged in", logger.Fields{"bot": username})

		messenger = client
	}

	var alerters []notifier.Alerter
	if !flagDryRun && os.Getenv("TWITTER_API_KEY") != "" {
		tw, err := notifier.NewTwitterAlerter()
		if err != nil {
			return fmt.Errorf("configuring twitter alerter: %w", err)
		}
		alerters = append(alerters, tw)
		log.Info("twitter alert mirror enabled", nil)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			log.Info("serving metrics", logger.Fields{"addr": cfg.MetricsAddr})
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error("metrics server", logger.Fields{"addr": cfg.MetricsAddr}, err)
			}
		}()
	}

	if client != nil {
		commands := bot.New(client, state, log)
		go func() {
			if err := commands.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("command loop", nil, err)
			}
		}()
	}

	w := watch.New(watch.Config{
		URL:         cfg.URL,
		TargetDay:   cfg.TargetDay,
		TargetMonth: cfg.TargetMonth,
		Interval:    cfg.CheckInterval(),
		Mention:     cfg.Mention,
	}, gate, sc, messenger, state, log, alerters...)

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutting down", nil)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
