package watch

import (
	"fmt"
	"time"
)

// openHour is the first local hour scraping is allowed, inclusive. The window
// runs through the end of the day; midnight itself is outside it.
const openHour = 8

// Gate decides whether scraping is allowed at a given moment, evaluated in the
// venue's local timezone. The box office never updates in the small hours, so
// the watcher stays quiet then.
type Gate struct {
	loc *time.Location
}

// NewGate creates a gate for the named IANA timezone.
func NewGate(name string) (*Gate, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return &Gate{loc: loc}, nil
}

// Open reports whether t falls inside operating hours (08:00 through 23:59
// local time).
func (g *Gate) Open(t time.Time) bool {
	return t.In(g.loc).Hour() >= openHour
}
