package engine

import (
	"github.com/LASTEXILE-CH/ReflexityAI/core"
)

// Agent bundles the brains, side-stores and policies of one autonomous
// decision maker. Brains are evaluated every tick; Memory and Historic are
// optional side channels available to effects and scorers and are the only
// agent state surviving between ticks.
type Agent struct {
	// Name identifies the agent within the engine.
	Name string

	// Brains are the agent's independent option sources.
	Brains []core.Brain

	// Interaction governs how this agent's brains relate within a round.
	Interaction core.Interaction

	// Resolution governs how a winner is picked among ranked options.
	Resolution core.Resolution

	// Memory is the agent's tag→value side-store. Optional.
	Memory core.MemoryStore

	// Historic is the agent's tag→timestamp side-store. Optional.
	Historic core.HistoricStore
}

// NewAgent constructs an agent with explicit policies.
func NewAgent(name string, interaction core.Interaction, resolution core.Resolution, brains ...core.Brain) *Agent {
	return &Agent{
		Name:        name,
		Brains:      brains,
		Interaction: interaction,
		Resolution:  resolution,
	}
}
