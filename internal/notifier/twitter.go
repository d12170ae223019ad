package notifier

import (
	"fmt"
	"os"
	"strings"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/wolfsburgpt/ticket-bot/internal/event"
)

// tweetMaxLen is Twitter's character limit.
const tweetMaxLen = 280

// TwitterAlerter mirrors the availability alert as a tweet.
type TwitterAlerter struct {
	client *twitter.Client
}

// NewTwitterAlerter creates a Twitter alerter using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterAlerter() (*TwitterAlerter, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterAlerter{client: client}, nil
}

// Announce posts the alert as a single tweet.
func (n *TwitterAlerter) Announce(a Alert) error {
	if _, _, err := n.client.Statuses.Update(formatTweet(a), nil); err != nil {
		return fmt.Errorf("posting tweet: %w", err)
	}
	return nil
}

// formatTweet formats an alert as a tweet
func formatTweet(a Alert) string {
	tweet := "🎟️ Tickets are on sale!\n\n"
	tweet += fmt.Sprintf("📅 %s %s\n", strings.ToUpper(a.Month), strings.ToUpper(a.Day))

	if a.URL != "" && a.URL != event.NoLink {
		tweet += fmt.Sprintf("\n🔗 %s\n", a.URL)
	}

	if len(tweet) > tweetMaxLen {
		tweet = tweet[:tweetMaxLen-3] + "..."
	}

	return tweet
}
