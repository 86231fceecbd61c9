package brain

// CacheTier distinguishes how long a memoized value survives within a tick.
type CacheTier int

const (
	// TierFull values survive rank computations and drop only before the next
	// generation pass.
	TierFull CacheTier = iota

	// TierShort values additionally drop before every per-option rank
	// computation.
	TierShort
)

// CachedValue memoizes one scoring sub-computation with a tier that decides
// which invalidation hooks affect it. The compute callback runs at most once
// between invalidations; invalidating an already-invalid value is a no-op,
// keeping both hooks idempotent.
type CachedValue struct {
	compute func() float64
	tier    CacheTier
	value   float64
	valid   bool
}

// NewCachedValue wraps a sub-computation in a memoizing node.
func NewCachedValue(tier CacheTier, compute func() float64) *CachedValue {
	return &CachedValue{compute: compute, tier: tier}
}

// Value computes on first use and returns the memoized result until the next
// invalidation.
func (c *CachedValue) Value() float64 {
	if !c.valid {
		c.value = c.compute()
		c.valid = true
	}
	return c.value
}

// ClearCache implements core.Cacheable; it drops the value regardless of tier.
func (c *CachedValue) ClearCache() { c.valid = false }

// ClearShortCache implements core.Cacheable; it drops only short-tier values.
func (c *CachedValue) ClearShortCache() {
	if c.tier == TierShort {
		c.valid = false
	}
}
