package core

import (
	"fmt"
	"strings"
)

// Interaction governs how the brains of one agent relate within a round.
type Interaction int

const (
	// Cooperative lets every brain act independently each tick: per-brain
	// weight maxima, one selection per viable brain.
	Cooperative Interaction = iota

	// Competitive lets only the single globally best brain act: one weight
	// maximum across all brains, at most one selection total.
	Competitive
)

// String returns the string representation of the interaction policy.
func (i Interaction) String() string {
	switch i {
	case Cooperative:
		return "cooperative"
	case Competitive:
		return "competitive"
	default:
		return fmt.Sprintf("interaction(%d)", int(i))
	}
}

// ParseInteraction converts a configuration string into an Interaction.
// Matching is case-insensitive; unknown values wrap ErrInvalidInteraction.
func ParseInteraction(s string) (Interaction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cooperative":
		return Cooperative, nil
	case "competitive":
		return Competitive, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidInteraction)
	}
}

// Resolution governs how a winner is picked among ranked options.
type Resolution int

const (
	// Robotic deterministically picks the best-ranked option.
	Robotic Resolution = iota

	// Human picks randomly, weighted by overall rank, so lower-ranked options
	// still win occasionally.
	Human
)

// String returns the string representation of the resolution policy.
func (r Resolution) String() string {
	switch r {
	case Robotic:
		return "robotic"
	case Human:
		return "human"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// ParseResolution converts a configuration string into a Resolution.
// Matching is case-insensitive; unknown values wrap ErrInvalidResolution.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "robotic":
		return Robotic, nil
	case "human":
		return Human, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidResolution)
	}
}
