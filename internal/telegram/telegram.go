package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"
)

// apiBaseURL is a variable so tests can point the client at a local server.
var apiBaseURL = "https://api.telegram.org/bot"

const (
	sendTimeout = 10 * time.Second

	// MaxMessageLen is the hard cap applied to outgoing message bodies.
	MaxMessageLen = 2000
)

// Client represents a Telegram Bot API client bound to one destination chat.
type Client struct {
	botToken   string
	chatID     int64
	httpClient *http.Client
}

// NewClient creates a new Telegram client.
func NewClient(botToken string, chatID int64) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: sendTimeout,
		},
	}, nil
}

// SendMessage sends a text message to the configured destination chat,
// truncated to MaxMessageLen.
func (c *Client) SendMessage(text string) error {
	return c.SendTo(c.chatID, text)
}

// SendTo sends a text message to an arbitrary chat. Command replies go back to
// the chat they came from, which is not necessarily the announcement channel.
func (c *Client) SendTo(chatID int64, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     Truncate(text, MaxMessageLen),
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s%s/sendMessage", apiBaseURL, c.botToken), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// GetMe verifies the bot token against the API and returns the bot's username.
// Used once at startup as a connectivity barrier before the loops begin.
func (c *Client) GetMe() (string, error) {
	resp, err := c.httpClient.Get(fmt.Sprintf("%s%s/getMe", apiBaseURL, c.botToken))
	if err != nil {
		return "", fmt.Errorf("verifying bot token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK     bool `json:"ok"`
		Result struct {
			Username string `json:"username"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return "", fmt.Errorf("telegram API rejected the bot token")
	}

	return result.Result.Username, nil
}

// GetUpdates long-polls the API for new updates. timeoutSeconds is the server-
// side hold time; the request itself is bound to ctx so shutdown interrupts an
// in-flight poll.
func (c *Client) GetUpdates(ctx context.Context, offset, timeoutSeconds int) ([]Update, error) {
	params := url.Values{}
	if offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}
	if timeoutSeconds > 0 {
		params.Set("timeout", fmt.Sprintf("%d", timeoutSeconds))
	}

	reqURL := fmt.Sprintf("%s%s/getUpdates", apiBaseURL, c.botToken)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Extra headroom on top of the server-side hold time.
	pollClient := &http.Client{Timeout: time.Duration(timeoutSeconds+10) * time.Second}

	resp, err := pollClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API returned not ok")
	}

	return result.Result, nil
}

// Truncate caps text at max characters without splitting a rune.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max])
}
