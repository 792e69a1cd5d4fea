package scoring

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var ErrNegativeScore = errors.New("score must not be negative")

// RankingStore keeps the top-MaxEntries table in memory and writes it through
// to a Storage on every submission.
type RankingStore struct {
	mu      sync.Mutex
	storage ScoreStorage
	log     zerolog.Logger
	now     func() time.Time
	table   []Entry
}

// NewRankingStore creates a store and loads the persisted table.
func NewRankingStore(storage ScoreStorage, logger zerolog.Logger) *RankingStore {
	rs := &RankingStore{
		storage: storage,
		log:     logger,
		now:     time.Now,
	}
	rs.Load()
	return rs
}

// Load re-reads the persisted table. Missing or unreadable data yields an empty
// table; it is logged, never returned.
func (rs *RankingStore) Load() []Entry {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	entries, err := rs.storage.LoadAll()
	if err != nil {
		rs.log.Warn().Err(err).Msg("rankings unreadable, starting empty")
		entries = nil
	}
	rs.table = topEntries(entries, MaxEntries)
	return rs.list()
}

// Refresh re-reads the persisted table so entries written by another process
// show up. On a read error the in-memory table is kept.
func (rs *RankingStore) Refresh() []Entry {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.refresh()
	return rs.list()
}

func (rs *RankingStore) refresh() {
	entries, err := rs.storage.LoadAll()
	if err != nil {
		rs.log.Warn().Err(err).Msg("rankings unreadable, keeping in-memory table")
		return
	}
	rs.table = topEntries(entries, MaxEntries)
}

// Submit re-reads the persisted table, records a score under name, keeps the
// best MaxEntries and persists the table. It returns the entry's 1-based rank,
// or 0 if it did not make the table. A read failure falls back to the
// in-memory table. A write failure is returned but the in-memory table keeps the new entry.
func (rs *RankingStore) Submit(name string, score int) (int, error) {
	if score < 0 {
		return 0, ErrNegativeScore
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.refresh()
	rank := rankOf(rs.table, score)
	entry := Entry{
		Name:  CleanName(name),
		Score: score,
		Time:  rs.now().Format(TimeFormat),
	}
	rs.table = topEntries(append(rs.table, entry), MaxEntries)
	if rank > MaxEntries {
		rank = 0
	}

	if err := rs.storage.SaveAll(rs.table); err != nil {
		rs.log.Warn().Err(err).Msg("could not save rankings")
		return rank, fmt.Errorf("could not save rankings: %w", err)
	}
	rs.log.Debug().Str("name", entry.Name).Int("score", score).Int("rank", rank).Msg("score recorded")
	return rank, nil
}

// List returns the ranking table in display order.
func (rs *RankingStore) List() []Entry {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.list()
}

func (rs *RankingStore) list() []Entry {
	out := make([]Entry, len(rs.table))
	copy(out, rs.table)
	return out
}
