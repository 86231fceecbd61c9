// Package engine implements the decision cycle driver: it owns the scheduling
// loop that periodically asks each registered agent's brains for fresh
// options, hands them to the resolver, and executes the selected effects.
// Each agent ticks independently on its own goroutine with no shared mutable
// state between agents; within one tick everything runs synchronously.
package engine
