package core

import (
	"fmt"
	"sort"
)

// RankScorer computes an option's fine-grained rank. Rank computation may be
// expensive; the resolver invokes it only for options still contested after
// weight narrowing, never more than once per tick unless re-resolved.
type RankScorer interface {
	ScoreRank() float64
}

// RankFunc adapts a plain function to the RankScorer interface.
type RankFunc func() float64

// ScoreRank implements RankScorer.
func (f RankFunc) ScoreRank() float64 { return f() }

// Action is the callback performed when a chosen option executes one of its
// effects. Concrete mechanics (move, fire, write memory) live outside the
// core; implementations receive the context and data captured at option
// creation.
type Action interface {
	Execute(context, data any) error
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(context, data any) error

// Execute implements Action.
func (f ActionFunc) Execute(context, data any) error { return f(context, data) }

// Effect is one ordered step performed when its owning option is chosen.
// Effects execute in ascending Order; equal orders keep their authored
// sequence position.
type Effect struct {
	Order   int
	Action  Action
	Context any
	Data    any
}

// Option is a candidate decision produced by a brain for one decision tick.
// Options are value-like per tick and never persisted across ticks; all
// scoring fields below are rebuilt from scratch every cycle.
type Option struct {
	// Weight is the coarse eligibility score, computed once at construction.
	Weight int

	// Rank is the fine-grained score, populated lazily by ComputeRank.
	Rank float64

	// Ranked reports whether a ranking round has populated Rank.
	Ranked bool

	// OverallRank is Rank shifted so the round's minimum equals 1, making it
	// usable directly as relative selection mass. It exists only after a
	// ranking round.
	OverallRank float64

	// Probability is assigned during selection; its partitioning depends on
	// the resolution and interaction policies.
	Probability float64

	// Effects are performed in ascending Order when the option is chosen.
	Effects []Effect

	// IteratorState is the opaque producer snapshot captured by BindIterator.
	IteratorState any

	scorer RankScorer
	source StatefulIterator
}

// NewOption builds an option with an eagerly computed weight and a scorer for
// lazy rank computation. Negative weights clamp to zero. A nil scorer yields
// a zero rank if a ranking round ever reaches the option.
func NewOption(weight int, scorer RankScorer, effects ...Effect) *Option {
	if weight < 0 {
		weight = 0
	}
	return &Option{Weight: weight, scorer: scorer, Effects: effects}
}

// BindIterator snapshots the producing iterator's state so that rank
// computation later sees the iteration context that produced this exact
// option, even though the producer advances while emitting siblings.
func (o *Option) BindIterator(src StatefulIterator) {
	o.source = src
	o.IteratorState = src.IteratorState()
}

// ComputeRank restores the captured iterator state into the producer (when
// bound) and evaluates the scorer. Repeated calls with unchanged inputs yield
// the same value.
func (o *Option) ComputeRank() float64 {
	if o.source != nil {
		o.source.SetIteratorState(o.IteratorState)
	}
	if o.scorer != nil {
		o.Rank = o.scorer.ScoreRank()
	}
	o.Ranked = true
	return o.Rank
}

// ExecuteEffects performs the option's effects in ascending Order, stable on
// ties. The first failing effect aborts execution; the error is wrapped with
// the effect's position.
func (o *Option) ExecuteEffects() error {
	effects := make([]Effect, len(o.Effects))
	copy(effects, o.Effects)
	sort.SliceStable(effects, func(i, j int) bool { return effects[i].Order < effects[j].Order })

	for i, eff := range effects {
		if eff.Action == nil {
			continue
		}
		if err := eff.Action.Execute(eff.Context, eff.Data); err != nil {
			return fmt.Errorf("effect %d (order %d): %w", i, eff.Order, err)
		}
	}

	return nil
}
