package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/srodi/sysmon/pkg/control"
	"github.com/srodi/sysmon/pkg/procfs"
	"github.com/srodi/sysmon/pkg/report"
	"github.com/srodi/sysmon/pkg/types"
)

// DefaultInterval is the refresh cadence of the display.
const DefaultInterval = 3 * time.Second

// Config holds the monitor settings. The YAML keys mirror the command line
// flag names.
type Config struct {
	Interval   time.Duration `yaml:"interval"`
	TopK       int           `yaml:"topk"`
	Sort       string        `yaml:"sort"`
	HideKernel bool          `yaml:"hide-kernel"`
	Filter     string        `yaml:"filter"`
	ProcRoot   string        `yaml:"proc"`
	Signal     string        `yaml:"signal"`
	Watch      bool          `yaml:"watch"`
	LogFile    string        `yaml:"log-file"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Interval: DefaultInterval,
		TopK:     types.DefaultTopK,
		Sort:     "cpu",
		ProcRoot: procfs.DefaultRoot,
		Signal:   "SIGTERM",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Normalize replaces out-of-range values with defaults and trims strings.
func (c *Config) Normalize() {
	def := Default()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	c.Sort = strings.ToLower(strings.TrimSpace(c.Sort))
	if _, ok := report.ParseSortName(c.Sort); !ok {
		c.Sort = def.Sort
	}
	c.Filter = strings.TrimSpace(c.Filter)
	if strings.TrimSpace(c.ProcRoot) == "" {
		c.ProcRoot = def.ProcRoot
	}
	if _, err := control.ParseSignal(c.Signal); err != nil {
		c.Signal = def.Signal
	}
}

// SortKey returns the configured initial sort column.
func (c Config) SortKey() report.SortKey {
	key, _ := report.ParseSortName(c.Sort)
	return key
}

// FilterConfig returns the table filters.
func (c Config) FilterConfig() report.FilterConfig {
	return report.FilterConfig{HideKernel: c.HideKernel, NameFilter: c.Filter}
}
