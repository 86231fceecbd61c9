package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LASTEXILE-CH/ReflexityAI/core"
)

func TestParse_FullDocument(t *testing.T) {
	doc := []byte(`
tick_interval: 250ms
interaction: competitive
resolution: human
agents:
  - name: guard
  - name: medic
    interaction: cooperative
    resolution: robotic
`)

	cfg, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, core.Competitive, cfg.Interaction)
	assert.Equal(t, core.Human, cfg.Resolution)

	require.Len(t, cfg.Agents, 2)
	assert.Equal(t, AgentConfig{Name: "guard", Interaction: core.Competitive, Resolution: core.Human}, cfg.Agents[0])
	assert.Equal(t, AgentConfig{Name: "medic", Interaction: core.Cooperative, Resolution: core.Robotic}, cfg.Agents[1])
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bad yaml", doc: "tick_interval: [unclosed"},
		{name: "bad duration", doc: "tick_interval: fast"},
		{name: "negative duration", doc: "tick_interval: -1s"},
		{name: "unknown interaction", doc: "interaction: friendly"},
		{name: "unknown resolution", doc: "resolution: random"},
		{name: "agent missing name", doc: "agents:\n  - interaction: cooperative"},
		{name: "agent unknown policy", doc: "agents:\n  - name: guard\n    resolution: dice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval: 1s"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.TickInterval)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
