package core

import "errors"

// Sentinel errors surfaced by the resolver and engine. Configuration errors
// indicate a programming or config defect, never a runtime condition, and are
// raised immediately without retry.
var (
	// ErrInvalidInteraction reports an unrecognized multi-brain interaction policy.
	ErrInvalidInteraction = errors.New("invalid interaction policy")

	// ErrInvalidResolution reports an unrecognized option resolution policy.
	ErrInvalidResolution = errors.New("invalid resolution policy")

	// ErrDegenerateRanks reports a zero overall-rank mass during probability
	// assignment. The +1 shift applied during normalization makes this
	// unreachable for any round with at least one option; it is asserted
	// defensively before dividing.
	ErrDegenerateRanks = errors.New("degenerate overall-rank mass")

	// ErrUnknownAgent reports a decision tick requested for an unregistered agent.
	ErrUnknownAgent = errors.New("unknown agent")
)
