package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	s := Default()
	require.NoError(t, s.Validate())

	modes, err := s.FillModeList()
	require.NoError(t, err)
	assert.Equal(t, broker.DefaultFillModes, modes)

	p := s.Policy()
	assert.True(t, p.SpreadGuard)
	assert.Equal(t, 10.0, p.MaxSpreadCost)

	sz, err := s.Sizer()
	require.NoError(t, err)
	assert.Equal(t, risk.ConventionFixed, sz.Convention)
	assert.Equal(t, risk.MinLot, sz.MinLot)

	d, err := s.BridgeTimeout()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)
}

func TestParse_YAMLOverDefaults(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`
max_spread_cost: 4.5
spread_guard: false
pip_convention: point
fill_modes: [FOK, IOC]
journal:
  type: none
`))
	require.NoError(t, err)

	assert.Equal(t, 4.5, s.MaxSpreadCost)
	assert.False(t, s.SpreadGuard)
	assert.Equal(t, "point", s.PipConvention)
	assert.Equal(t, []string{"FOK", "IOC"}, s.FillModes)
	assert.Equal(t, "none", s.Journal.Type)
	// untouched keys keep defaults
	assert.Equal(t, 1.0, s.DefaultRiskPercent)
	assert.Equal(t, "FXConsoleTrigger", s.Comment)
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`{"max_spread_cost": 7, "deviation": 5, "bridge": {"url": "http://bridge:9000", "timeout": "3s"}}`))
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.MaxSpreadCost)
	assert.Equal(t, 5, s.Deviation)
	assert.Equal(t, "http://bridge:9000", s.Bridge.URL)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative spread cost", func(s *Settings) { s.MaxSpreadCost = -1 }},
		{"bad convention", func(s *Settings) { s.PipConvention = "tick" }},
		{"zero default risk", func(s *Settings) { s.DefaultRiskPercent = 0 }},
		{"risk above 100", func(s *Settings) { s.DefaultRiskPercent = 150 }},
		{"zero min lot", func(s *Settings) { s.MinLot = 0 }},
		{"negative deviation", func(s *Settings) { s.Deviation = -2 }},
		{"empty fill modes", func(s *Settings) { s.FillModes = nil }},
		{"unknown fill mode", func(s *Settings) { s.FillModes = []string{"IOC", "GTX"} }},
		{"negative min rr", func(s *Settings) { s.MinRewardToRisk = -1 }},
		{"no bridge url", func(s *Settings) { s.Bridge.URL = "" }},
		{"bad timeout", func(s *Settings) { s.Bridge.Timeout = "soon" }},
		{"csv without files", func(s *Settings) { s.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite without path", func(s *Settings) { s.Journal = JournalConfig{Type: "sqlite"} }},
		{"unknown journal", func(s *Settings) { s.Journal.Type = "postgres" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Default()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"settings.yaml", "settings.json"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			s := Default()
			s.MaxSpreadCost = 6
			s.FillModes = []string{"RETURN"}
			require.NoError(t, s.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestLoader_Reload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	l := NewLoader(path, zerolog.Nop())

	// missing file falls back to defaults
	s, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	require.NoError(t, os.WriteFile(path, []byte("max_spread_cost: 3\n"), 0o644))
	s, err = l.Reload()
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.MaxSpreadCost)

	// a broken edit keeps the last good settings
	require.NoError(t, os.WriteFile(path, []byte("max_spread_cost: -3\n"), 0o644))
	s, err = l.Reload()
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 3.0, s.MaxSpreadCost)
}
