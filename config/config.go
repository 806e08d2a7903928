package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/logging"
	"github.com/rustyeddy/fxtrigger/risk"
	"gopkg.in/yaml.v3"
)

// Settings is the operator-editable settings document. It is re-read before
// every trade so edits take effect without restarting the console.
type Settings struct {
	MaxSpreadCost      float64  `json:"max_spread_cost" yaml:"max_spread_cost"`
	SpreadGuard        bool     `json:"spread_guard" yaml:"spread_guard"`
	PipConvention      string   `json:"pip_convention" yaml:"pip_convention"`
	DefaultRiskPercent float64  `json:"default_risk_percent" yaml:"default_risk_percent"`
	MinLot             float64  `json:"min_lot" yaml:"min_lot"`
	Deviation          int      `json:"deviation" yaml:"deviation"`
	Comment            string   `json:"comment" yaml:"comment"`
	FillModes          []string `json:"fill_modes" yaml:"fill_modes"`

	// Zero disables the check.
	MaxRiskPercent  float64 `json:"max_risk_percent,omitempty" yaml:"max_risk_percent,omitempty"`
	MinRewardToRisk float64 `json:"min_reward_to_risk,omitempty" yaml:"min_reward_to_risk,omitempty"`

	Bridge  BridgeConfig   `json:"bridge" yaml:"bridge"`
	Journal JournalConfig  `json:"journal" yaml:"journal"`
	Log     logging.Config `json:"log" yaml:"log"`
}

// BridgeConfig locates the terminal bridge sidecar.
type BridgeConfig struct {
	URL     string `json:"url" yaml:"url"`
	Timeout string `json:"timeout" yaml:"timeout"` // e.g. "15s"
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	ExecutionsFile string `json:"executions_file,omitempty" yaml:"executions_file,omitempty"`
	AttemptsFile   string `json:"attempts_file,omitempty" yaml:"attempts_file,omitempty"`
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads settings from a file. YAML is tried first, then JSON.
func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a settings document over Default, so omitted keys keep
// their default values.
func Parse(data []byte) (*Settings, error) {
	s := Default()

	if err := yaml.Unmarshal(data, s); err != nil {
		s = Default()
		if jerr := json.Unmarshal(data, s); jerr != nil {
			return nil, fmt.Errorf("parse settings (tried YAML and JSON): %w", jerr)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (s *Settings) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// Validate checks if the settings are usable.
func (s *Settings) Validate() error {
	if s.MaxSpreadCost < 0 {
		return fmt.Errorf("max_spread_cost must not be negative")
	}
	if _, err := risk.ParseConvention(s.PipConvention); err != nil {
		return fmt.Errorf("pip_convention: %w", err)
	}
	if s.DefaultRiskPercent <= 0 || s.DefaultRiskPercent > 100 {
		return fmt.Errorf("default_risk_percent must be in (0, 100]")
	}
	if s.MinLot <= 0 {
		return fmt.Errorf("min_lot must be positive")
	}
	if s.Deviation < 0 {
		return fmt.Errorf("deviation must not be negative")
	}
	if _, err := broker.ParseFillModes(s.FillModes); err != nil {
		return fmt.Errorf("fill_modes: %w", err)
	}
	if s.MaxRiskPercent < 0 || s.MinRewardToRisk < 0 {
		return fmt.Errorf("max_risk_percent and min_reward_to_risk must not be negative")
	}
	if s.Bridge.URL == "" {
		return fmt.Errorf("bridge.url is required")
	}
	if _, err := s.BridgeTimeout(); err != nil {
		return err
	}

	switch s.Journal.Type {
	case "", "none":
	case "csv":
		if s.Journal.ExecutionsFile == "" || s.Journal.AttemptsFile == "" {
			return fmt.Errorf("journal executions_file and attempts_file required for CSV type")
		}
	case "sqlite":
		if s.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Policy returns the pre-submission checks the settings enable.
func (s *Settings) Policy() risk.Policy {
	return risk.Policy{
		SpreadGuard:     s.SpreadGuard,
		MaxSpreadCost:   s.MaxSpreadCost,
		MaxRiskPercent:  s.MaxRiskPercent,
		MinRewardToRisk: s.MinRewardToRisk,
	}
}

// Sizer returns a sizer for the configured pip convention and minimum lot.
func (s *Settings) Sizer() (risk.Sizer, error) {
	c, err := risk.ParseConvention(s.PipConvention)
	if err != nil {
		return risk.Sizer{}, err
	}
	sz := risk.NewSizer(c)
	sz.MinLot = s.MinLot
	return sz, nil
}

func (s *Settings) FillModeList() ([]broker.FillMode, error) {
	return broker.ParseFillModes(s.FillModes)
}

func (s *Settings) BridgeTimeout() (time.Duration, error) {
	if s.Bridge.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Bridge.Timeout)
	if err != nil {
		return 0, fmt.Errorf("bridge.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("bridge.timeout must not be negative")
	}
	return d, nil
}

// Default returns settings matching the console's historical behaviour:
// spread guard on at 10, 1% risk, IOC then FOK then RETURN.
//
// MaxSpreadCost is in the instrument's quote currency. A JPY-quoted pair
// prices its spread in yen, so a normal spread exceeds 10 even at the
// minimum lot: raise the limit or disable the guard for yen crosses.
func Default() *Settings {
	return &Settings{
		MaxSpreadCost:      10,
		SpreadGuard:        true,
		PipConvention:      string(risk.ConventionFixed),
		DefaultRiskPercent: 1.0,
		MinLot:             risk.MinLot,
		Deviation:          0,
		Comment:            "FXConsoleTrigger",
		FillModes:          []string{"IOC", "FOK", "RETURN"},
		Bridge: BridgeConfig{
			URL:     "http://127.0.0.1:8787",
			Timeout: "15s",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./fxtrigger.db",
		},
		Log: logging.DefaultConfig(),
	}
}
