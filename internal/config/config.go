// Package config describes the yaml configuration of a sensor kit run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Kit        KitConfig        `yaml:"kit"`
	Sensors    []SensorConfig   `yaml:"sensors"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// ---- KIT ----

type KitConfig struct {
	ChipSelect int    `yaml:"chip_select"`
	Prefix     string `yaml:"prefix"`
	CSV        bool   `yaml:"csv"`
	RootDir    string `yaml:"root_dir"`
}

// ---- SENSORS ----

type SensorConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	ID         uint8  `yaml:"id"`
	IntervalMs int    `yaml:"interval_ms"`
}

// ---- SIMULATION ----

type SimulationConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// Load reads and parses a kit config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kit config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse kit config: %w", err)
	}

	if cfg.Kit.RootDir == "" {
		cfg.Kit.RootDir = "."
	}

	return &cfg, nil
}
