package event

import "testing"

func TestMatch(t *testing.T) {
	entries := []Entry{
		{Day: "14", Month: "march", URL: "https://tickets.example.com/a"},
		{Day: "15", Month: "march", URL: "https://tickets.example.com/b"},
		{Day: "15", Month: "march", URL: "https://tickets.example.com/c"},
		{Day: "20", Month: "april", URL: NoLink},
	}

	tests := []struct {
		name      string
		day       string
		month     string
		wantURL   string
		wantFound bool
	}{
		{
			name:      "exact match",
			day:       "14",
			month:     "march",
			wantURL:   "https://tickets.example.com/a",
			wantFound: true,
		},
		{
			name:      "first match wins on duplicates",
			day:       "15",
			month:     "march",
			wantURL:   "https://tickets.example.com/b",
			wantFound: true,
		},
		{
			name:      "case insensitive",
			day:       "15",
			month:     "MARCH",
			wantURL:   "https://tickets.example.com/b",
			wantFound: true,
		},
		{
			name:      "match with no link sentinel",
			day:       "20",
			month:     "april",
			wantURL:   NoLink,
			wantFound: true,
		},
		{
			name:      "day matches but month does not",
			day:       "15",
			month:     "april",
			wantFound: false,
		},
		{
			name:      "no match",
			day:       "1",
			month:     "january",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, found := Match(entries, tt.day, tt.month)
			if found != tt.wantFound {
				t.Fatalf("Match() found = %v, want %v", found, tt.wantFound)
			}
			if url != tt.wantURL {
				t.Errorf("Match() url = %q, want %q", url, tt.wantURL)
			}
		})
	}
}

func TestMatchEmptyEntries(t *testing.T) {
	if _, found := Match(nil, "15", "march"); found {
		t.Error("Match() on nil entries should not find anything")
	}
}

func TestEntrySummary(t *testing.T) {
	e := Entry{Day: "15", Month: "march", URL: "https://tickets.example.com/x"}
	want := "📅 15 MARCH — https://tickets.example.com/x"
	if got := e.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
