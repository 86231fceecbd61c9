package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LASTEXILE-CH/ReflexityAI/core"
	"github.com/LASTEXILE-CH/ReflexityAI/logging"
	"github.com/LASTEXILE-CH/ReflexityAI/resolver"
)

// Config defines tuning parameters for the decision cycle.
type Config struct {
	// TickInterval spaces decision ticks apart for agents driven by Run.
	// Synchronous callers of ResolveOnce are unaffected.
	TickInterval time.Duration
}

// DefaultConfig provides sensible defaults for interactive agents.
var DefaultConfig = Config{
	TickInterval: 100 * time.Millisecond,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for the decision loop.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Resolver computes each tick's decision. Defaults to resolver.New().
	Resolver *resolver.Resolver

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Engine drives the decision cycles of registered agents. One engine may host
// many agents; each runs its cycle independently. Registration is
// goroutine-safe; per-agent tick state never crosses agent boundaries.
type Engine struct {
	mu       sync.RWMutex
	agents   map[string]*Agent
	agentIDs map[string]string

	resolver *resolver.Resolver
	config   Config
	logger   logging.Logger
}

// New creates an Engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Resolver == nil {
		opts.Resolver = resolver.New(func(o *resolver.Options) {
			o.Logger = opts.Logger
		})
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Config.TickInterval <= 0 {
		opts.Config.TickInterval = DefaultConfig.TickInterval
	}

	return &Engine{
		agents:   make(map[string]*Agent),
		agentIDs: make(map[string]string),
		resolver: opts.Resolver,
		config:   opts.Config,
		logger:   opts.Logger,
	}
}

// Register adds an agent to the engine and returns its instance ID.
// Re-registering a name replaces the previous agent.
func (e *Engine) Register(a *Agent) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.NewString()
	e.agents[a.Name] = a
	e.agentIDs[a.Name] = id
	e.logger.Info("agent registered",
		"agent", a.Name, "agent_id", id,
		"brains", len(a.Brains),
		"interaction", a.Interaction.String(),
		"resolution", a.Resolution.String())
	return id
}

// GetAgent returns the registered agent by name.
func (e *Engine) GetAgent(name string) (*Agent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.agents[name]
	return a, ok
}

// ResolveOnce runs one synchronous decision tick for the named agent:
// regenerate every brain's options, resolve, and execute the selected
// options' effects. The returned round exposes the intermediate narrowing
// for introspection even when effect execution fails.
//
// A context cancelled after resolution but before execution discards the
// tick: resolution itself has no abort point, but its results are dropped
// without invoking effects.
func (e *Engine) ResolveOnce(ctx context.Context, name string) (*resolver.Round, error) {
	e.mu.RLock()
	agent, ok := e.agents[name]
	agentID := e.agentIDs[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("resolve once: %q: %w", name, core.ErrUnknownAgent)
	}

	tickID := uuid.NewString()

	weighted := make(map[core.Brain][]*core.Option, len(agent.Brains))
	for _, b := range agent.Brains {
		weighted[b] = b.GenerateOptions()
	}

	round, err := e.resolver.Resolve(weighted, agent.Interaction, agent.Resolution)
	if err != nil {
		return nil, fmt.Errorf("resolve once: agent %q tick %s: %w", name, tickID, err)
	}

	if err := ctx.Err(); err != nil {
		e.logger.Debug("tick discarded before execution",
			"agent", name, "agent_id", agentID, "tick_id", tickID)
		return round, err
	}

	for _, brain := range selectedBrains(round) {
		selected := round.Selected[brain]
		if err := selected.ExecuteEffects(); err != nil {
			e.logger.Error("effect execution failed",
				"agent", name, "agent_id", agentID, "tick_id", tickID,
				"brain", brain.Name(), "error", err)
			return round, fmt.Errorf("resolve once: agent %q brain %q: %w", name, brain.Name(), err)
		}
		e.logger.Debug("option executed",
			"agent", name, "agent_id", agentID, "tick_id", tickID,
			"brain", brain.Name(),
			"weight", selected.Weight, "rank", selected.Rank,
			"probability", selected.Probability)
	}

	e.logger.Info("decision tick resolved",
		"agent", name, "agent_id", agentID, "tick_id", tickID,
		"brains", len(agent.Brains), "selected", len(round.Selected))

	return round, nil
}

// Run drives every registered agent's decision cycle until ctx is cancelled.
// Agents tick independently; a failed tick is logged and the next cycle
// proceeds, since no resolution state carries across ticks.
//
// The agent set is snapshotted when Run starts: agents registered afterwards
// are not picked up by an in-flight Run and need a fresh call (or synchronous
// ResolveOnce ticks, which always consult the live registry).
func (e *Engine) Run(ctx context.Context) {
	e.mu.RLock()
	names := make([]string, 0, len(e.agents))
	for name := range e.agents {
		names = append(names, name)
	}
	e.mu.RUnlock()

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			e.runAgent(ctx, name)
		}(name)
	}
	wg.Wait()
}

func (e *Engine) runAgent(ctx context.Context, name string) {
	ticker := time.NewTicker(e.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.ResolveOnce(ctx, name); err != nil && ctx.Err() == nil {
				e.logger.Error("decision tick failed", "agent", name, "error", err)
			}
		}
	}
}

// selectedBrains returns the round's selected brains in ascending name order
// so cross-brain effect execution is deterministic.
func selectedBrains(round *resolver.Round) []core.Brain {
	brains := make([]core.Brain, 0, len(round.Selected))
	for b := range round.Selected {
		brains = append(brains, b)
	}
	sort.Slice(brains, func(i, j int) bool { return brains[i].Name() < brains[j].Name() })
	return brains
}
