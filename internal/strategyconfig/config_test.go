package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `strategies:
  - name: momentum-12m
    category: momentum
    portfolio_size: 20
    min_market_cap: 500000000
  - name: deep-value
    category: value
    portfolio_size: 25
  - name: blend
    category: custom
    portfolio_size: 10
    factors:
      - factor: pe
        weight: 0.5
        direction: lower_better
      - factor: roe
        weight: 0.5
        direction: higher_better
`

func TestLoad(t *testing.T) {
	cfg, yamlData, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)
	require.Len(t, cfg.Strategies, 3)
	assert.NotEmpty(t, yamlData)

	// Momentum defaults: quality gate at 5 and banding with buffer 0.20
	momentum := cfg.Strategies[0]
	require.NotNil(t, momentum.MinFScore)
	assert.Equal(t, DefaultMinFScore, *momentum.MinFScore)
	assert.True(t, momentum.Banding.Enabled)
	assert.Equal(t, DefaultBandingBuffer, momentum.Banding.Buffer)

	// Non-momentum strategies get no implicit gate
	value := cfg.Strategies[1]
	assert.Nil(t, value.MinFScore)
	assert.False(t, value.Banding.Enabled)
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	_, _, err := Load(writeYAML(t, `strategies:
  - name: typo
    category: value
    portfolio_sized: 10
`))
	assert.Error(t, err, "typos in field names must fail at load, not be ignored")
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load("/nonexistent/strategies.yaml")
	assert.Error(t, err)
}

func TestNormalize_DropsUnknownFactors(t *testing.T) {
	cfg, _, err := Load(writeYAML(t, `strategies:
  - name: blend
    category: custom
    portfolio_size: 10
    factors:
      - factor: pe
        weight: 0.3
        direction: lower_better
      - factor: magic_signal
        weight: 0.4
        direction: higher_better
      - factor: roe
        weight: 0.3
        direction: higher_better
`))
	require.NoError(t, err)

	factors := cfg.Strategies[0].Factors
	require.Len(t, factors, 2, "unknown factor dropped at load")
	assert.Equal(t, "pe", factors[0].Factor)
	assert.Equal(t, "roe", factors[1].Factor)

	// Surviving weights re-normalized to sum to 1
	assert.InDelta(t, 0.5, factors[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, factors[1].Weight, 1e-9)

	require.Len(t, cfg.Warnings, 1)
	assert.Equal(t, "blend", cfg.Warnings[0].Strategy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no strategies",
			yaml: `strategies: []`,
		},
		{
			name: "missing name",
			yaml: `strategies:
  - category: value
    portfolio_size: 10`,
		},
		{
			name: "duplicate name",
			yaml: `strategies:
  - name: dup
    category: value
    portfolio_size: 10
  - name: dup
    category: quality
    portfolio_size: 10`,
		},
		{
			name: "unknown category",
			yaml: `strategies:
  - name: s
    category: astrology
    portfolio_size: 10`,
		},
		{
			name: "zero portfolio size",
			yaml: `strategies:
  - name: s
    category: value
    portfolio_size: 0`,
		},
		{
			name: "f_score out of range",
			yaml: `strategies:
  - name: s
    category: value
    portfolio_size: 10
    min_f_score: 12`,
		},
		{
			name: "banding buffer out of range",
			yaml: `strategies:
  - name: s
    category: value
    portfolio_size: 10
    banding:
      enabled: true
      buffer: 1.5`,
		},
		{
			name: "custom without factors",
			yaml: `strategies:
  - name: s
    category: custom
    portfolio_size: 10`,
		},
		{
			name: "bad direction",
			yaml: `strategies:
  - name: s
    category: custom
    portfolio_size: 10
    factors:
      - factor: pe
        weight: 1.0
        direction: sideways`,
		},
		{
			name: "factor list on built-in category",
			yaml: `strategies:
  - name: s
    category: value
    portfolio_size: 10
    factors:
      - factor: pe
        weight: 1.0
        direction: lower_better`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeYAML(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestHash_Deterministic(t *testing.T) {
	cfg, yamlData, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	hash2, err := Hash(cfg)
	require.NoError(t, err)
	assert.Equal(t, hash, hash2)

	snap, err := NewDecisionSnapshot(cfg, yamlData)
	require.NoError(t, err)
	assert.Equal(t, hash, snap.ConfigHash)
	assert.Equal(t, []string{"momentum-12m", "deep-value", "blend"}, snap.Strategies)
}

func TestHash_ChangesWithConfig(t *testing.T) {
	cfg1, _, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)
	cfg2, _, err := Load(writeYAML(t, `strategies:
  - name: momentum-12m
    category: momentum
    portfolio_size: 30
`))
	require.NoError(t, err)

	h1, err := Hash(cfg1)
	require.NoError(t, err)
	h2, err := Hash(cfg2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
