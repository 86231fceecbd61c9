package brain

import (
	"github.com/LASTEXILE-CH/ReflexityAI/core"
)

// FuncProducer adapts a plain function into an option-producing node. Use it
// for stateless producers that emit a fixed shape of candidates each tick.
type FuncProducer func() []*core.Option

// ProduceOptions implements core.OptionProducer.
func (f FuncProducer) ProduceOptions() []*core.Option { return f() }

// ListProducer emits one option per element of a data list, advancing an
// internal index while producing. Each emitted option snapshots the index via
// BindIterator so that rank computation later sees the element that produced
// it, even though the index has moved on to siblings since.
//
// The build callback may return nil to skip an element. Scorers that need the
// producing element read it through Current.
type ListProducer[T any] struct {
	items []T
	index int
	build func(item T) *core.Option
}

// NewListProducer constructs a list-iterating producer node.
func NewListProducer[T any](items []T, build func(item T) *core.Option) *ListProducer[T] {
	return &ListProducer[T]{items: items, index: -1, build: build}
}

// SetItems replaces the iterated collection; the next generation pass walks
// the new list from the start.
func (p *ListProducer[T]) SetItems(items []T) {
	p.items = items
	p.index = -1
}

// Current returns the element under the iterator. During production this is
// the element being emitted; during rank computation it is the element
// restored from the option's snapshot.
func (p *ListProducer[T]) Current() (T, bool) {
	if p.index < 0 || p.index >= len(p.items) {
		var zero T
		return zero, false
	}
	return p.items[p.index], true
}

// ProduceOptions implements core.OptionProducer.
func (p *ListProducer[T]) ProduceOptions() []*core.Option {
	options := make([]*core.Option, 0, len(p.items))
	for i := range p.items {
		p.index = i
		o := p.build(p.items[i])
		if o == nil {
			continue
		}
		o.BindIterator(p)
		options = append(options, o)
	}
	return options
}

// IteratorState implements core.StatefulIterator.
func (p *ListProducer[T]) IteratorState() any { return p.index }

// SetIteratorState implements core.StatefulIterator.
func (p *ListProducer[T]) SetIteratorState(state any) {
	if i, ok := state.(int); ok {
		p.index = i
	}
}
