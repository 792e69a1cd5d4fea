package scoring

import (
	"sort"
	"strings"
)

const (
	MaxEntries  = 10
	MaxNameLen  = 20
	DefaultName = "Player"
	TimeFormat  = "2006-01-02 15:04:05"
)

// Entry is a single ranking record, stored as {"name","score","time"}.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Time  string `json:"time"`
}

// CleanName trims the name, substitutes DefaultName when nothing is left, and
// caps it at MaxNameLen characters.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if r := []rune(name); len(r) > MaxNameLen {
		return string(r[:MaxNameLen])
	}
	return name
}

// topEntries returns a copy of entries sorted by score descending, keeping the
// original order among equal scores, truncated to n.
func topEntries(entries []Entry, n int) []Entry {
	entriesCopy := make([]Entry, len(entries))
	copy(entriesCopy, entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// rankOf returns the 1-based position a new score takes when appended after
// entries, which must already be sorted. Ties rank below existing entries.
func rankOf(entries []Entry, score int) int {
	rank := 1
	for _, e := range entries {
		if e.Score >= score {
			rank++
		}
	}
	return rank
}
