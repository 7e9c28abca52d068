package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config is the contents of a configuration file. Empty fields take their
// defaults; flags given on the command line override them.
type config struct {
	AngleMode   string `yaml:"angle_mode,omitempty"`
	TimeLayout  string `yaml:"time_layout,omitempty"`
	HistoryCSV  string `yaml:"history_csv,omitempty"`
	LineHistory string `yaml:"line_history,omitempty"`
}

// loadConfig reads a YAML configuration file. An empty name gives the default
// configuration.
func loadConfig(name string) (*config, error) {
	var cfg config
	if name == "" {
		return &cfg, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &cfg, nil
}

func decodeConfig(r io.Reader, cfg *config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	_, err := parseMode(cfg.AngleMode)
	return err
}

// mode returns the configured angle mode.
func (cfg *config) mode() calc.AngleMode {
	m, _ := parseMode(cfg.AngleMode)
	return m
}

// layout returns the configured history time layout.
func (cfg *config) layout() string {
	if cfg.TimeLayout == "" {
		return calc.DefaultTimeLayout
	}
	return cfg.TimeLayout
}

func parseMode(s string) (calc.AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deg", "degrees":
		return calc.Degrees, nil
	case "rad", "radians":
		return calc.Radians, nil
	default:
		return calc.Degrees, fmt.Errorf("unknown angle mode %q (want deg or rad)", s)
	}
}
