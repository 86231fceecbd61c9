// Package resolver implements the weighting/ranking/selection pipeline that
// turns per-brain candidate options into a decision for one tick.
//
// Resolution proceeds in phases:
//  1. Narrow each brain's candidates to its winning weight (per-brain maxima
//     under Cooperative interaction, one global maximum under Competitive).
//  2. If weight alone disambiguates the tick, select directly and skip
//     ranking entirely.
//  3. Otherwise compute each contested option's rank (clearing the owning
//     brain's short cache and restoring iterator state first), normalize
//     ranks so the round minimum is 1, and select per the resolution policy:
//     deterministic best-pick (Robotic) or rank-weighted random pick (Human).
//
// All round state is owned by a single Resolve call; the package holds no
// cross-tick state, so independent agents can resolve concurrently.
package resolver
