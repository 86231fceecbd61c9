package brain

import (
	"github.com/LASTEXILE-CH/ReflexityAI/core"
)

// BaseBrain is the default core.Brain implementation: a named registry of
// graph nodes evaluated in registration order. Nodes opt into capabilities by
// implementing the core interfaces (OptionProducer, Cacheable,
// StatefulIterator); a node may implement several.
//
// A brain is owned by exactly one agent and accessed only from that agent's
// decision cycle, so it carries no internal locking.
type BaseBrain struct {
	name  string
	nodes []any
}

// New constructs a brain from its graph nodes.
func New(name string, nodes ...any) *BaseBrain {
	return &BaseBrain{name: name, nodes: nodes}
}

// Name returns the brain's identifier, unique within its agent.
func (b *BaseBrain) Name() string { return b.name }

// AddNode appends a node to the graph.
func (b *BaseBrain) AddNode(node any) {
	b.nodes = append(b.nodes, node)
}

// GenerateOptions clears the full cache, then rebuilds the brain's candidate
// set from its producer nodes in registration order. A brain whose producers
// all yield nothing returns an empty set, which is valid.
func (b *BaseBrain) GenerateOptions() []*core.Option {
	b.clearFullCache()

	var options []*core.Option
	for _, node := range b.nodes {
		if p, ok := node.(core.OptionProducer); ok {
			options = append(options, p.ProduceOptions()...)
		}
	}
	return options
}

func (b *BaseBrain) clearFullCache() {
	for _, node := range b.nodes {
		if c, ok := node.(core.Cacheable); ok {
			c.ClearCache()
		}
	}
}

// ClearShortCache invalidates only the per-option memoization tier of every
// cacheable node. The resolver calls this once per option before computing
// that option's rank; clearing repeatedly is safe.
func (b *BaseBrain) ClearShortCache() {
	for _, node := range b.nodes {
		if c, ok := node.(core.Cacheable); ok {
			c.ClearShortCache()
		}
	}
}
