// Package core provides the foundational domain types and interfaces of the
// decision engine. It defines the core abstractions for:
//
//   - Options (scored, executable candidate decisions)
//   - Brains (independent per-agent option sources with cache hooks)
//   - Node capabilities (option production, caching, stateful iteration)
//   - Interaction / Resolution policies governing cross-brain selection
//   - Pluggable side-stores for agent memory (tag→value) and history (tag→timestamp)
//
// The package intentionally keeps implementation concerns (resolution
// algorithm, scheduling, persistence) out of scope, exposing small interfaces
// to enable custom backends and extensions.
package core
