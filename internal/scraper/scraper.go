package scraper

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/wolfsburgpt/ticket-bot/internal/event"
)

const (
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0"
	Timeout   = 30 * time.Second
)

// TransportError reports a non-success HTTP status from the ticket page.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// Scraper fetches the ticket page and extracts its date entries.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the given page URL.
func New(pageURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: pageURL,
	}
}

// FetchEntries performs one GET against the ticket page and returns every date
// entry found on it, in document order.
func (s *Scraper) FetchEntries() ([]event.Entry, error) {
	text, err := s.fetchPage()
	if err != nil {
		return nil, err
	}
	return s.parseEntries(strings.NewReader(text), s.url)
}

// fetchPage downloads the page with a browser-like header set and returns the
// decoded body text.
func (s *Scraper) fetchPage() (string, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9,en-US;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return decodeBody(body)
}

// decodeBody inflates gzip payloads. Setting Accept-Encoding by hand disables
// the transport's automatic decompression, so the magic number is sniffed here.
func decodeBody(body []byte) (string, error) {
	if len(body) < 2 || body[0] != 0x1f || body[1] != 0x8b {
		return string(body), nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("opening gzip body: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("decompressing body: %w", err)
	}
	return string(out), nil
}

// parseEntries extracts date entries from HTML. Each div whose class contains
// "date" is expected to hold a day label and a month label; containers missing
// either are skipped silently. The navigation link is the nearest enclosing
// anchor, resolved against the page URL. Nothing is deduplicated.
func (s *Scraper) parseEntries(r io.Reader, pageURL string) ([]event.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	entries := make([]event.Entry, 0)

	doc.Find("div[class*='date']").Each(func(i int, container *goquery.Selection) {
		dayTag := container.Find("p[class*='day']").First()
		monthTag := container.Find("p[class*='month']").First()
		if dayTag.Length() == 0 || monthTag.Length() == 0 {
			return
		}

		link := event.NoLink
		if href, ok := container.Closest("a[href]").Attr("href"); ok {
			if ref, err := url.Parse(href); err == nil {
				link = base.ResolveReference(ref).String()
			}
		}

		entries = append(entries, event.Entry{
			Day:   strings.ToLower(strings.TrimSpace(dayTag.Text())),
			Month: strings.ToLower(strings.TrimSpace(monthTag.Text())),
			URL:   link,
		})
	})

	return entries, nil
}
