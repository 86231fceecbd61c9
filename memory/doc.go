// Package memory provides the agent side-stores consumed by effects and
// scorers: a tag→value store (core.MemoryStore) and a tag→timestamp historic
// store (core.HistoricStore). In-memory implementations suit transient
// agents; the SQLite-backed store persists both maps across process restarts.
package memory
