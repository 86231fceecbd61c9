package core

import "time"

// MemoryStore is the agent-owned tag→value side-store. It sits outside the
// resolver's concerns; effects read and write it as a side channel, and it is
// the only agent state (besides HistoricStore) surviving between ticks.
// Implementations must be safe for concurrent use.
type MemoryStore interface {
	Get(tag string) (any, bool, error)
	Set(tag string, value any) error
	Delete(tag string) error
	Tags() ([]string, error)
	Clear() error
}

// HistoricStore records when a tag was last marked, letting effects and
// scorers reason about elapsed time ("last fired", "last saw target").
// Since reports the elapsed time between the tag's last mark and now.
// Implementations must be safe for concurrent use.
type HistoricStore interface {
	Mark(tag string, at time.Time) error
	Timestamp(tag string) (time.Time, bool, error)
	Since(tag string, now time.Time) (time.Duration, bool, error)
	Clear() error
}
