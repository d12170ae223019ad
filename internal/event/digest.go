package event

import "strings"

// EmptySentinel is the single digest line used when a scrape yields no entries,
// so a page going empty still reads as a change.
const EmptySentinel = "*(No ticket sessions found)*"

// Digest is the full list of scraped entries rendered one line per entry, in
// extraction order. It exists purely for change detection between cycles; the
// comparison is over the rendered lines, never the entries themselves.
type Digest []string

// BuildDigest renders entries into a digest. A nil or empty extraction yields
// the one-line sentinel digest.
func BuildDigest(entries []Entry) Digest {
	if len(entries) == 0 {
		return Digest{EmptySentinel}
	}
	lines := make(Digest, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Summary())
	}
	return lines
}

// Equal reports whether both digests contain the same lines in the same order.
// An empty previous digest (process start) never equals a freshly built one,
// since BuildDigest always emits at least the sentinel line.
func (d Digest) Equal(other Digest) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// Message renders the digest as the channel message body.
func (d Digest) Message() string {
	return "**Current Ticket Dates:**\n" + strings.Join(d, "\n")
}
