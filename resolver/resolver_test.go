package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LASTEXILE-CH/ReflexityAI/core"
	"github.com/LASTEXILE-CH/ReflexityAI/logging"
)

// stubBrain is a minimal core.Brain double counting short-cache clears.
type stubBrain struct {
	name        string
	shortClears int
}

func (b *stubBrain) Name() string { return b.name }

func (b *stubBrain) GenerateOptions() []*core.Option { return nil }

func (b *stubBrain) ClearShortCache() { b.shortClears++ }

// opt builds an option with a fixed weight and a scorer returning rank.
func opt(weight int, rank float64) *core.Option {
	return core.NewOption(weight, core.RankFunc(func() float64 { return rank }))
}

// seqRand returns draws from the given sequence, then repeats the last one.
func seqRand(draws ...float64) core.RandSource {
	i := 0
	return core.RandFunc(func() float64 {
		d := draws[i]
		if i < len(draws)-1 {
			i++
		}
		return d
	})
}

func fixedRand(r float64) core.RandSource { return seqRand(r) }

func TestBestOptionsOnWeight_Cooperative(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	aOpts := []*core.Option{opt(0, 0), opt(2, 0), opt(2, 0)}
	weighted := map[core.Brain][]*core.Option{
		a: aOpts,
		b: {opt(0, 0), opt(0, 0)},
	}

	best, err := bestOptionsOnWeight(weighted, core.Cooperative)
	require.NoError(t, err)

	require.Contains(t, best, core.Brain(a))
	assert.NotContains(t, best, core.Brain(b), "all-zero brain must be dropped")
	require.Len(t, best[a], 2)
	for _, o := range best[a] {
		assert.Equal(t, 2, o.Weight, "best set must be uniform at the brain max")
	}
	assert.Same(t, aOpts[1], best[a][0])
	assert.Same(t, aOpts[2], best[a][1])
}

func TestBestOptionsOnWeight_Competitive(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	weighted := map[core.Brain][]*core.Option{
		a: {opt(3, 0), opt(1, 0)},
		b: {opt(5, 0), opt(5, 0)},
	}

	best, err := bestOptionsOnWeight(weighted, core.Competitive)
	require.NoError(t, err)

	assert.NotContains(t, best, core.Brain(a), "below-global-max brain contributes nothing")
	require.Len(t, best[b], 2)
	for _, o := range best[b] {
		assert.Equal(t, 5, o.Weight)
	}
}

func TestBestOptionsOnWeight_CompetitiveAllZero(t *testing.T) {
	a := &stubBrain{name: "a"}
	weighted := map[core.Brain][]*core.Option{
		a: {opt(0, 0), opt(0, 0)},
	}

	best, err := bestOptionsOnWeight(weighted, core.Competitive)
	require.NoError(t, err)
	assert.Empty(t, best)
}

func TestBestOptionsOnWeight_InvalidInteraction(t *testing.T) {
	a := &stubBrain{name: "a"}
	weighted := map[core.Brain][]*core.Option{a: {opt(1, 0)}}

	_, err := bestOptionsOnWeight(weighted, core.Interaction(42))
	assert.ErrorIs(t, err, core.ErrInvalidInteraction)
}

func TestWeightEnoughForSelection(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}

	tests := []struct {
		name        string
		best        map[core.Brain][]*core.Option
		interaction core.Interaction
		want        bool
	}{
		{
			name:        "cooperative no ties",
			best:        map[core.Brain][]*core.Option{a: {opt(2, 0)}, b: {opt(4, 0)}},
			interaction: core.Cooperative,
			want:        true,
		},
		{
			name:        "cooperative tie in one brain",
			best:        map[core.Brain][]*core.Option{a: {opt(2, 0), opt(2, 0)}, b: {opt(4, 0)}},
			interaction: core.Cooperative,
			want:        false,
		},
		{
			name:        "competitive single survivor",
			best:        map[core.Brain][]*core.Option{b: {opt(5, 0)}},
			interaction: core.Competitive,
			want:        true,
		},
		{
			name:        "competitive two survivors across brains",
			best:        map[core.Brain][]*core.Option{a: {opt(5, 0)}, b: {opt(5, 0)}},
			interaction: core.Competitive,
			want:        false,
		},
		{
			name:        "empty round",
			best:        map[core.Brain][]*core.Option{},
			interaction: core.Competitive,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weightEnoughForSelection(tt.best, tt.interaction))
		})
	}
}

func TestResolve_FastPath_SkipsRanking(t *testing.T) {
	a := &stubBrain{name: "a"}
	winner := opt(3, 0)
	weighted := map[core.Brain][]*core.Option{
		a: {opt(1, 0), winner},
	}

	r := New()
	round, err := r.Resolve(weighted, core.Cooperative, core.Robotic)
	require.NoError(t, err)

	require.Len(t, round.Selected, 1)
	assert.Same(t, winner, round.Selected[a])
	assert.Equal(t, 1.0, winner.Probability)
	assert.False(t, winner.Ranked, "weight disambiguated; rank must not be computed")
	assert.Zero(t, a.shortClears, "no short cache clears on the fast path")
}

func TestResolve_FastPath_CompetitiveSingleGlobalWinner(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	winner := opt(5, 0)
	weighted := map[core.Brain][]*core.Option{
		a: {opt(3, 0)},
		b: {winner},
	}

	round, err := New().Resolve(weighted, core.Competitive, core.Robotic)
	require.NoError(t, err)

	require.Len(t, round.Selected, 1, "competitive yields at most one selection")
	assert.Same(t, winner, round.Selected[b])
	assert.NotContains(t, round.Selected, core.Brain(a))
}

func TestResolve_DegenerateRound_NoSelection(t *testing.T) {
	a := &stubBrain{name: "a"}
	weighted := map[core.Brain][]*core.Option{
		a: {opt(0, 0), opt(0, 0)},
	}

	for _, interaction := range []core.Interaction{core.Cooperative, core.Competitive} {
		round, err := New().Resolve(weighted, interaction, core.Robotic)
		require.NoError(t, err, "all-zero weights are a valid terminal outcome, not an error")
		assert.Empty(t, round.BestWeighted)
		assert.Empty(t, round.Selected)
	}
}

func TestResolve_InvalidResolution(t *testing.T) {
	a := &stubBrain{name: "a"}
	weighted := map[core.Brain][]*core.Option{a: {opt(1, 0)}}

	_, err := New().Resolve(weighted, core.Cooperative, core.Resolution(9))
	assert.ErrorIs(t, err, core.ErrInvalidResolution)
}

func TestCalculateOverallRanks_MinIsOne(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	best := map[core.Brain][]*core.Option{
		a: {opt(2, -2.5), opt(2, 0)},
		b: {opt(2, 4)},
	}

	rankBestOptions(best)
	calculateOverallRanks(best)

	assert.Equal(t, 1.0, best[a][0].OverallRank)
	assert.Equal(t, 3.5, best[a][1].OverallRank)
	assert.Equal(t, 7.5, best[b][0].OverallRank)
}

func TestRankBestOptions_ClearsShortCachePerOption(t *testing.T) {
	a := &stubBrain{name: "a"}
	best := map[core.Brain][]*core.Option{
		a: {opt(2, 1), opt(2, 2), opt(2, 3)},
	}

	rankBestOptions(best)

	assert.Equal(t, 3, a.shortClears, "one short clear per option, immediately before its rank")
	for _, o := range best[a] {
		assert.True(t, o.Ranked)
	}
}

func TestRankingRound_Idempotent(t *testing.T) {
	a := &stubBrain{name: "a"}
	best := map[core.Brain][]*core.Option{
		a: {opt(2, 1.5), opt(2, 4.5)},
	}

	rankBestOptions(best)
	calculateOverallRanks(best)
	firstRanks := []float64{best[a][0].Rank, best[a][1].Rank}
	firstOverall := []float64{best[a][0].OverallRank, best[a][1].OverallRank}

	rankBestOptions(best)
	calculateOverallRanks(best)

	assert.Equal(t, firstRanks, []float64{best[a][0].Rank, best[a][1].Rank})
	assert.Equal(t, firstOverall, []float64{best[a][0].OverallRank, best[a][1].OverallRank})
}

func TestResolve_RoboticCooperative_EndToEnd(t *testing.T) {
	a := &stubBrain{name: "a"}
	low := opt(2, 1)
	high := opt(2, 3)
	weighted := map[core.Brain][]*core.Option{
		a: {opt(0, 9), low, high},
	}

	round, err := New().Resolve(weighted, core.Cooperative, core.Robotic)
	require.NoError(t, err)

	require.Len(t, round.BestWeighted[a], 2, "both weight-2 options survive narrowing")
	assert.Positive(t, a.shortClears, "weight tie forces a ranking round")

	require.Len(t, round.Selected, 1)
	assert.Same(t, high, round.Selected[a])
	assert.Equal(t, 1.0, high.Probability)
	assert.Equal(t, 0.0, low.Probability)
}

func TestResolve_RoboticCompetitive_OneSelectionTotal(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	aBest := opt(5, 2)
	bBest := opt(5, 7)
	weighted := map[core.Brain][]*core.Option{
		a: {aBest, opt(3, 0)},
		b: {bBest},
	}

	round, err := New().Resolve(weighted, core.Competitive, core.Robotic)
	require.NoError(t, err)

	require.Len(t, round.Selected, 1)
	assert.Same(t, bBest, round.Selected[b])
	assert.Equal(t, 1.0, bBest.Probability)
	assert.Equal(t, 0.0, aBest.Probability)
}

func TestResolve_RoboticCompetitive_TieBreaksOnOrder(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	aOpt := opt(5, 3)
	bOpt := opt(5, 3)
	weighted := map[core.Brain][]*core.Option{
		a: {aOpt},
		b: {bOpt},
	}

	round, err := New().Resolve(weighted, core.Competitive, core.Robotic)
	require.NoError(t, err)

	require.Len(t, round.Selected, 1)
	assert.Same(t, aOpt, round.Selected[a], "first encountered in brain-name order wins ties")
}

func TestResolve_HumanCompetitive_Probabilities(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		want int // index into the brain's option slice
	}{
		{name: "draw below first mass", draw: 0.2, want: 0},
		{name: "draw beyond first mass", draw: 0.5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &stubBrain{name: "a"}
			options := []*core.Option{opt(2, 1), opt(2, 3)}
			weighted := map[core.Brain][]*core.Option{a: options}

			r := New(func(o *Options) {
				o.Rand = fixedRand(tt.draw)
				o.Logger = logging.NoOpLogger{}
			})
			round, err := r.Resolve(weighted, core.Competitive, core.Human)
			require.NoError(t, err)

			assert.InDelta(t, 0.25, options[0].Probability, 1e-12)
			assert.InDelta(t, 0.75, options[1].Probability, 1e-12)

			require.Len(t, round.Selected, 1)
			assert.Same(t, options[tt.want], round.Selected[a])
		})
	}
}

func TestSelectHumanCompetitive_RoundingShortfallSelectsLastOption(t *testing.T) {
	a := &stubBrain{name: "a"}
	first := opt(2, 1)
	second := opt(2, 1)
	// Simulate accumulated float rounding leaving the cumulative mass short
	// of a draw close to 1; the competitive walk must still select.
	first.Probability = 0.5
	second.Probability = 0.49
	round := &Round{
		BestWeighted: map[core.Brain][]*core.Option{a: {first, second}},
		Selected:     make(map[core.Brain]*core.Option),
	}

	r := New(func(o *Options) { o.Rand = fixedRand(0.995) })
	r.selectHumanCompetitive(round)

	require.Len(t, round.Selected, 1)
	assert.Same(t, second, round.Selected[a])
}

func TestResolve_HumanCooperative_GlobalNormalization(t *testing.T) {
	a := &stubBrain{name: "a"}
	b := &stubBrain{name: "b"}
	aOpts := []*core.Option{opt(2, 1), opt(2, 3)}
	bOpts := []*core.Option{opt(5, 2), opt(5, 2)}
	weighted := map[core.Brain][]*core.Option{a: aOpts, b: bOpts}

	// Brains are walked in name order: first draw belongs to a, second to b.
	r := New(func(o *Options) { o.Rand = seqRand(0.4, 0.6) })
	round, err := r.Resolve(weighted, core.Cooperative, core.Human)
	require.NoError(t, err)

	// Ranks {1,3,2,2} shift to overall {1,3,2,2}; global mass is 8.
	assert.InDelta(t, 0.125, aOpts[0].Probability, 1e-12)
	assert.InDelta(t, 0.375, aOpts[1].Probability, 1e-12)
	assert.InDelta(t, 0.25, bOpts[0].Probability, 1e-12)
	assert.InDelta(t, 0.25, bOpts[1].Probability, 1e-12)

	// a's cumulative mass reaches 0.5 >= 0.4 at its second option; b's mass
	// tops out at 0.5 < 0.6, so b selects nothing this tick.
	assert.Same(t, aOpts[1], round.Selected[a])
	assert.NotContains(t, round.Selected, core.Brain(b))
}

func TestResolve_SortsWeightedForDisplay(t *testing.T) {
	a := &stubBrain{name: "a"}
	o1 := opt(1, 0)
	o2 := opt(3, 1)
	o3 := opt(3, 5)
	weighted := map[core.Brain][]*core.Option{
		a: {o1, o2, o3},
	}

	_, err := New().Resolve(weighted, core.Cooperative, core.Robotic)
	require.NoError(t, err)

	assert.Equal(t, []*core.Option{o3, o2, o1}, weighted[a],
		"descending weight, then descending rank")
}

func TestSortedBrains_Deterministic(t *testing.T) {
	m := map[core.Brain][]*core.Option{
		&stubBrain{name: "c"}: nil,
		&stubBrain{name: "a"}: nil,
		&stubBrain{name: "b"}: nil,
	}

	brains := sortedBrains(m)
	require.Len(t, brains, 3)
	assert.Equal(t, "a", brains[0].Name())
	assert.Equal(t, "b", brains[1].Name())
	assert.Equal(t, "c", brains[2].Name())
}
