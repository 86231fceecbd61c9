package resolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/LASTEXILE-CH/ReflexityAI/core"
	"github.com/LASTEXILE-CH/ReflexityAI/logging"
)

// Options configures a Resolver instance using the functional options pattern.
type Options struct {
	// Rand supplies uniform draws in [0,1) for the Human resolution policy.
	// Defaults to the process-wide math/rand/v2 source.
	Rand core.RandSource

	// Logger receives per-round diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Resolver computes execution decisions from scored candidates. It is
// stateless between calls and safe for concurrent use by independent agents
// as long as each call receives its own option maps.
type Resolver struct {
	rand   core.RandSource
	logger logging.Logger
}

// New creates a Resolver with optional overrides.
func New(optFns ...func(o *Options)) *Resolver {
	opts := Options{
		Rand:   core.DefaultRand(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Rand == nil {
		opts.Rand = core.DefaultRand()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Resolver{rand: opts.Rand, logger: opts.Logger}
}

// Round holds the transient state of one resolution pass. Everything here is
// rebuilt from scratch each tick and exposed for introspection and UIs; only
// Selected drives execution.
type Round struct {
	// Weighted is the full candidate set per brain, sorted for display
	// (descending weight, then rank) once resolution completes.
	Weighted map[core.Brain][]*core.Option

	// BestWeighted is the winning-weight subset of Weighted per the
	// interaction policy.
	BestWeighted map[core.Brain][]*core.Option

	// Selected holds at most one option per brain, the tick's final decision.
	// A brain with no nonzero-weight option has no entry.
	Selected map[core.Brain]*core.Option
}

// Resolve computes the tick's decision from the per-brain candidate sets.
// An unrecognized interaction or resolution value is a fatal configuration
// error returned immediately; a round whose weights are all zero is not an
// error and resolves to an empty selection.
func (r *Resolver) Resolve(
	weighted map[core.Brain][]*core.Option,
	interaction core.Interaction,
	resolution core.Resolution,
) (*Round, error) {
	if resolution != core.Robotic && resolution != core.Human {
		return nil, fmt.Errorf("resolve: %s: %w", resolution, core.ErrInvalidResolution)
	}

	round := &Round{
		Weighted: weighted,
		Selected: make(map[core.Brain]*core.Option),
	}

	best, err := bestOptionsOnWeight(weighted, interaction)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	round.BestWeighted = best

	if weightEnoughForSelection(best, interaction) {
		r.selectOnWeight(round, interaction)
		r.logger.Debug("weight disambiguated tick, ranking skipped",
			"interaction", interaction.String(), "selected", len(round.Selected))
	} else {
		rankBestOptions(best)
		calculateOverallRanks(best)
		if err := r.selectOnOverallRank(round, interaction, resolution); err != nil {
			return nil, fmt.Errorf("resolve: %w", err)
		}
		r.logger.Debug("ranking round completed",
			"interaction", interaction.String(), "resolution", resolution.String(),
			"selected", len(round.Selected))
	}

	sortForDisplay(weighted)

	return round, nil
}

// bestOptionsOnWeight narrows each brain's candidates to its winning weight.
// Cooperative keeps every option at the brain's own maximum and drops brains
// whose maximum is zero; Competitive keeps only options at the global maximum
// and yields an empty result when that maximum is zero.
func bestOptionsOnWeight(
	weighted map[core.Brain][]*core.Option,
	interaction core.Interaction,
) (map[core.Brain][]*core.Option, error) {
	best := make(map[core.Brain][]*core.Option, len(weighted))

	switch interaction {
	case core.Cooperative:
		for brain, options := range weighted {
			maxWeight := maxWeightOf(options)
			if maxWeight == 0 {
				continue
			}
			best[brain] = optionsAtWeight(options, maxWeight)
		}

	case core.Competitive:
		maxWeight := 0
		for _, options := range weighted {
			if w := maxWeightOf(options); w > maxWeight {
				maxWeight = w
			}
		}
		if maxWeight == 0 {
			return best, nil
		}
		for brain, options := range weighted {
			if keep := optionsAtWeight(options, maxWeight); len(keep) > 0 {
				best[brain] = keep
			}
		}

	default:
		return nil, fmt.Errorf("best options on weight: %s: %w", interaction, core.ErrInvalidInteraction)
	}

	return best, nil
}

func maxWeightOf(options []*core.Option) int {
	maxWeight := 0
	for _, o := range options {
		if o.Weight > maxWeight {
			maxWeight = o.Weight
		}
	}
	return maxWeight
}

func optionsAtWeight(options []*core.Option, weight int) []*core.Option {
	var keep []*core.Option
	for _, o := range options {
		if o.Weight == weight {
			keep = append(keep, o)
		}
	}
	return keep
}

// weightEnoughForSelection reports whether weight alone already disambiguates
// the tick, letting the resolver skip rank computation. Cooperative: no brain
// has a weight tie to break. Competitive: at most one option survived
// globally.
func weightEnoughForSelection(best map[core.Brain][]*core.Option, interaction core.Interaction) bool {
	if interaction == core.Competitive {
		total := 0
		for _, options := range best {
			total += len(options)
		}
		return total <= 1
	}

	for _, options := range best {
		if len(options) > 1 {
			return false
		}
	}
	return true
}

// selectOnWeight is the fast path taken when weight alone disambiguates.
// It deliberately re-scans the FULL weighted map rather than reading the
// narrowed BestWeighted; with the sufficiency check already passed the
// outcome is identical, but the traversal source is kept distinct on purpose.
func (r *Resolver) selectOnWeight(round *Round, interaction core.Interaction) {
	if interaction == core.Competitive {
		var winner *core.Option
		var owner core.Brain
		for _, brain := range sortedBrains(round.Weighted) {
			for _, o := range round.Weighted[brain] {
				if o.Weight == 0 {
					continue
				}
				if winner == nil || o.Weight > winner.Weight {
					winner, owner = o, brain
				}
			}
		}
		if winner != nil {
			winner.Probability = 1
			round.Selected[owner] = winner
		}
		return
	}

	for _, brain := range sortedBrains(round.Weighted) {
		var winner *core.Option
		for _, o := range round.Weighted[brain] {
			if o.Weight == 0 {
				continue
			}
			if winner == nil || o.Weight > winner.Weight {
				winner = o
			}
		}
		if winner != nil {
			winner.Probability = 1
			round.Selected[brain] = winner
		}
	}
}

// rankBestOptions computes the rank of every contested option. The owning
// brain's short cache is cleared once per option immediately before that
// option's rank is evaluated, so rank computation can rely on freshly
// invalidated per-option memoization while reusing tick-level caches.
// Iterator state restoration happens inside ComputeRank.
func rankBestOptions(best map[core.Brain][]*core.Option) {
	for _, brain := range sortedBrains(best) {
		for _, o := range best[brain] {
			brain.ClearShortCache()
			o.ComputeRank()
		}
	}
}

// calculateOverallRanks shifts every rank in the round so the minimum equals
// 1, putting all ranks on a strictly-positive scale usable directly as
// relative probability mass.
func calculateOverallRanks(best map[core.Brain][]*core.Option) {
	minRank := math.Inf(1)
	count := 0
	for _, options := range best {
		for _, o := range options {
			if o.Rank < minRank {
				minRank = o.Rank
			}
			count++
		}
	}
	if count == 0 {
		return
	}

	for _, options := range best {
		for _, o := range options {
			o.OverallRank = o.Rank - minRank + 1
		}
	}
}

// selectOnOverallRank applies one of the four selection policies to the
// ranked BestWeighted set.
func (r *Resolver) selectOnOverallRank(
	round *Round,
	interaction core.Interaction,
	resolution core.Resolution,
) error {
	best := round.BestWeighted

	switch resolution {
	case core.Robotic:
		if interaction == core.Competitive {
			r.selectRoboticCompetitive(round)
		} else {
			r.selectRoboticCooperative(round)
		}
		return nil

	case core.Human:
		total := 0.0
		count := 0
		for _, options := range best {
			for _, o := range options {
				total += o.OverallRank
				count++
			}
		}
		if count > 0 && total <= 0 {
			// Unreachable given the +1 shift in normalization; asserted anyway.
			return fmt.Errorf("select on overall rank: mass %v over %d options: %w",
				total, count, core.ErrDegenerateRanks)
		}
		for _, options := range best {
			for _, o := range options {
				o.Probability = o.OverallRank / total
			}
		}
		if interaction == core.Competitive {
			r.selectHumanCompetitive(round)
		} else {
			r.selectHumanCooperative(round)
		}
		return nil

	default:
		return fmt.Errorf("select on overall rank: %s: %w", resolution, core.ErrInvalidResolution)
	}
}

// selectRoboticCompetitive picks the single globally maximal-overall-rank
// option; first encountered wins ties in the deterministic brain/option order.
func (r *Resolver) selectRoboticCompetitive(round *Round) {
	var winner *core.Option
	var owner core.Brain
	for _, brain := range sortedBrains(round.BestWeighted) {
		for _, o := range round.BestWeighted[brain] {
			o.Probability = 0
			if winner == nil || o.OverallRank > winner.OverallRank {
				winner, owner = o, brain
			}
		}
	}
	if winner != nil {
		winner.Probability = 1
		round.Selected[owner] = winner
	}
}

// selectRoboticCooperative picks, per brain independently, its maximal
// overall-rank option; every brain with a nonempty best-weighted list gets
// exactly one selection.
func (r *Resolver) selectRoboticCooperative(round *Round) {
	for _, brain := range sortedBrains(round.BestWeighted) {
		var winner *core.Option
		for _, o := range round.BestWeighted[brain] {
			o.Probability = 0
			if winner == nil || o.OverallRank > winner.OverallRank {
				winner = o
			}
		}
		if winner != nil {
			winner.Probability = 1
			round.Selected[brain] = winner
		}
	}
}

// selectHumanCompetitive performs one weighted-random choice across all
// brains: a single uniform draw against the cumulative probability
// distribution, walking brains and options in the deterministic order.
func (r *Resolver) selectHumanCompetitive(round *Round) {
	threshold := r.rand.Float64()
	sum := 0.0
	var last *core.Option
	var lastOwner core.Brain
	for _, brain := range sortedBrains(round.BestWeighted) {
		for _, o := range round.BestWeighted[brain] {
			sum += o.Probability
			if sum >= threshold {
				round.Selected[brain] = o
				return
			}
			last, lastOwner = o, brain
		}
	}
	// The probability masses sum to 1, but accumulated rounding can leave sum
	// a few ULPs short of a draw near 1. The competitive walk must always
	// select; fall back to the last option walked.
	if last != nil {
		round.Selected[lastOwner] = last
	}
}

// selectHumanCooperative draws independently per brain, walking that brain's
// options against its own cumulative sum. Probabilities are normalized by the
// GLOBAL rank mass (all brains), not per brain; a brain whose cumulative mass
// never reaches its draw yields no selection that tick.
func (r *Resolver) selectHumanCooperative(round *Round) {
	for _, brain := range sortedBrains(round.BestWeighted) {
		threshold := r.rand.Float64()
		sum := 0.0
		for _, o := range round.BestWeighted[brain] {
			sum += o.Probability
			if sum >= threshold {
				round.Selected[brain] = o
				break
			}
		}
	}
}

// sortForDisplay orders each brain's full candidate list for inspection:
// descending weight, then descending rank (stable). Purely informational;
// selection has already completed when this runs.
func sortForDisplay(weighted map[core.Brain][]*core.Option) {
	for _, options := range weighted {
		sort.SliceStable(options, func(i, j int) bool {
			if options[i].Weight != options[j].Weight {
				return options[i].Weight > options[j].Weight
			}
			return options[i].Rank > options[j].Rank
		})
	}
}

// sortedBrains returns the map's brains in ascending name order. Go maps
// iterate in randomized order; every traversal whose order is observable
// (tie-breaks, cumulative scans) goes through this.
func sortedBrains[V any](m map[core.Brain]V) []core.Brain {
	brains := make([]core.Brain, 0, len(m))
	for b := range m {
		brains = append(brains, b)
	}
	sort.Slice(brains, func(i, j int) bool { return brains[i].Name() < brains[j].Name() })
	return brains
}
