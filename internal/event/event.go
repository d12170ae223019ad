package event

import (
	"fmt"
	"strings"
)

// NoLink is the URL sentinel for a date block with no enclosing anchor.
const NoLink = "No link"

// Entry is a single date block scraped from the ticket page. Day and month are
// free-text labels exactly as the page shows them, lower-cased and trimmed; URL
// is the resolved navigation link or NoLink. Entries live for one cycle only.
type Entry struct {
	Day   string
	Month string
	URL   string
}

// Summary renders the entry as one digest line.
func (e Entry) Summary() string {
	return fmt.Sprintf("📅 %s %s — %s", strings.ToUpper(e.Day), strings.ToUpper(e.Month), e.URL)
}

// Match scans entries in document order and returns the URL of the first entry
// whose day and month both equal the target, case-insensitively. Matching has
// no year component: two listings of the same day and month in different years
// cannot be told apart, and the first one in the document wins.
func Match(entries []Entry, targetDay, targetMonth string) (string, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Day, targetDay) && strings.EqualFold(e.Month, targetMonth) {
			return e.URL, true
		}
	}
	return "", false
}
