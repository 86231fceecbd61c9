// Package reflexityai provides a high-level façade over the core resolver and
// decision cycle driver, enabling rapid construction of utility-based
// autonomous agents. Most applications interact with this package by:
//  1. Creating a ReflexityAI via New() (optionally overriding config, resolver, logger)
//  2. Registering one or more agents, each with its brains and side-stores
//  3. Driving decisions synchronously (ResolveOnce) or in the background (Run)
//
// The façade delegates scheduling and execution to engine.Engine while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing.
package reflexityai

import (
	"context"

	"github.com/LASTEXILE-CH/ReflexityAI/config"
	"github.com/LASTEXILE-CH/ReflexityAI/core"
	"github.com/LASTEXILE-CH/ReflexityAI/engine"
	"github.com/LASTEXILE-CH/ReflexityAI/logging"
	"github.com/LASTEXILE-CH/ReflexityAI/resolver"
)

// Options configures the ReflexityAI instance.
type Options struct {
	// EngineConfig holds operational parameters for the decision loop.
	EngineConfig engine.Config

	// Resolver computes each tick's decision. Defaults to a resolver sharing
	// the instance logger.
	Resolver *resolver.Resolver

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ReflexityAI is the high-level façade aggregating the resolver and driver.
type ReflexityAI struct {
	opts   Options
	engine *engine.Engine
}

// New creates a ReflexityAI instance with optional overrides.
func New(optFns ...func(o *Options)) *ReflexityAI {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Resolver = opts.Resolver
		o.Logger = opts.Logger
	})

	return &ReflexityAI{opts: opts, engine: e}
}

// FromConfig creates an instance whose driver settings come from a loaded
// configuration. Agents listed in the configuration still need their brains
// attached via RegisterConfigured.
func FromConfig(cfg *config.Config, optFns ...func(o *Options)) *ReflexityAI {
	return New(append([]func(o *Options){func(o *Options) {
		o.EngineConfig.TickInterval = cfg.TickInterval
	}}, optFns...)...)
}

// RegisterAgent adds an agent to the underlying engine and returns its
// instance ID.
func (r *ReflexityAI) RegisterAgent(a *engine.Agent) string {
	return r.engine.Register(a)
}

// RegisterConfigured builds an agent from its configuration entry and the
// supplied brains, then registers it.
func (r *ReflexityAI) RegisterConfigured(ac config.AgentConfig, brains ...core.Brain) string {
	return r.engine.Register(engine.NewAgent(ac.Name, ac.Interaction, ac.Resolution, brains...))
}

// ResolveOnce runs one synchronous decision tick for the named agent and
// executes the selected effects.
func (r *ReflexityAI) ResolveOnce(ctx context.Context, agentName string) (*resolver.Round, error) {
	return r.engine.ResolveOnce(ctx, agentName)
}

// Run drives every registered agent's decision cycle until ctx is cancelled.
func (r *ReflexityAI) Run(ctx context.Context) {
	r.engine.Run(ctx)
}

// Engine exposes the underlying driver for advanced use.
func (r *ReflexityAI) Engine() *engine.Engine {
	return r.engine
}
