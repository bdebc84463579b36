package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the complete simulator configuration
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Data       DataConfig       `json:"data" yaml:"data"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	Currency       string  `json:"currency" yaml:"currency"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// SimulationConfig controls where replay starts and how much history is
// shown to the player.
type SimulationConfig struct {
	StartOffset int `json:"start_offset" yaml:"start_offset"`
	// Window is the number of bars shown up to and including today.
	// Zero shows everything from the first bar.
	Window int `json:"window" yaml:"window"`
}

// DataConfig selects the bars to replay
type DataConfig struct {
	File       string `json:"file" yaml:"file"`
	Instrument string `json:"instrument" yaml:"instrument"`
	From       string `json:"from,omitempty" yaml:"from,omitempty"` // YYYY-MM-DD, inclusive
	To         string `json:"to,omitempty" yaml:"to,omitempty"`     // YYYY-MM-DD, exclusive
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "csv", "sqlite" or "none" (also when empty)
	TradesFile   string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile   string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	SessionsFile string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development,omitempty" yaml:"development,omitempty"`
}

// Capital returns the initial capital as an exact decimal.
func (a AccountConfig) Capital() market.Cash {
	return decimal.NewFromFloat(a.InitialCapital)
}

// Range parses From and To. Unset bounds are returned as zero times.
func (d DataConfig) Range() (from, to time.Time, err error) {
	if d.From != "" {
		from, err = time.Parse(market.DateLayout, d.From)
		if err != nil {
			return from, to, fmt.Errorf("data.from: %w", err)
		}
	}
	if d.To != "" {
		to, err = time.Parse(market.DateLayout, d.To)
		if err != nil {
			return from, to, fmt.Errorf("data.to: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return from, to, fmt.Errorf("data.to must be after data.from")
	}
	return from, to, nil
}

// LoadBars reads the configured CSV file, filtered to the date range.
func (d DataConfig) LoadBars() (*market.BarSeries, error) {
	from, to, err := d.Range()
	if err != nil {
		return nil, err
	}
	return market.LoadCSV(d.File, d.Instrument, from, to)
}

// Open creates the configured journal. It returns nil for type "none".
func (j JournalConfig) Open() (journal.Journal, error) {
	switch j.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(j.TradesFile, j.EquityFile, j.SessionsFile)
	case "sqlite":
		return journal.NewSQLite(j.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", j.Type)
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if !market.KnownCurrency(c.Account.Currency) {
		return fmt.Errorf("unknown currency: %s", c.Account.Currency)
	}
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Simulation.StartOffset < 0 {
		return fmt.Errorf("simulation.start_offset must not be negative")
	}
	if c.Simulation.Window < 0 {
		return fmt.Errorf("simulation.window must not be negative")
	}
	if c.Data.Instrument == "" {
		return fmt.Errorf("data.instrument is required")
	}
	if _, _, err := c.Data.Range(); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns the US market configuration: trading starts on the
// first bar and the whole history so far is visible.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "PAPER-001",
			Currency:       "USD",
			InitialCapital: 10000,
		},
		Simulation: SimulationConfig{
			StartOffset: 0,
			Window:      0,
		},
		Data: DataConfig{
			File:       "./bars.csv",
			Instrument: "AAPL",
		},
		Journal: JournalConfig{
			Type:         "csv",
			TradesFile:   "./fills.csv",
			EquityFile:   "./equity.csv",
			SessionsFile: "./sessions.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Presets lists the names accepted by Preset.
var Presets = []string{"us", "ashare"}

// Preset returns a named starting configuration. "ashare" shows 50 days
// of history before the first decision and keeps a 51 bar window.
func Preset(name string) (*Config, error) {
	cfg := Default()
	switch name {
	case "", "us":
	case "ashare":
		cfg.Account.Currency = "CNY"
		cfg.Simulation.StartOffset = 50
		cfg.Simulation.Window = 51
		cfg.Data.Instrument = "600519"
	default:
		return nil, fmt.Errorf("unknown preset %q (want one of %s)", name, strings.Join(Presets, ", "))
	}
	return cfg, nil
}
