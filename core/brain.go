package core

// Brain is a named, independent source of candidate options for one agent.
//
// GenerateOptions must clear the brain's full cache before producing its
// candidate set; the resolver invokes ClearShortCache once per option
// immediately before that option's rank computation. Both hooks must be
// idempotent and side-effect-free beyond invalidating memoized sub-results,
// since they may run multiple times per tick.
type Brain interface {
	Name() string
	GenerateOptions() []*Option
	ClearShortCache()
}

// OptionProducer is a graph node that emits candidate options. A producer
// yielding zero options is valid.
type OptionProducer interface {
	ProduceOptions() []*Option
}

// Cacheable is a graph node holding memoized sub-results. ClearCache drops
// everything before a generation pass; ClearShortCache drops only the
// per-option tier, leaving tick-level results in place for reuse across rank
// computations.
type Cacheable interface {
	ClearCache()
	ClearShortCache()
}

// StatefulIterator is a producing context that advances internal state while
// emitting options, typically one per element of a data collection. Its
// state is snapshotted into each emitted option and restored before that
// option's rank is computed.
type StatefulIterator interface {
	IteratorState() any
	SetIteratorState(state any)
}
