// Package config loads optional defaults for ifstat from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds defaults read from a config file. Nil pointers and empty
// strings mean the value was not set.
type File struct {
	Interfaces       string   `yaml:"interfaces"`
	All              *bool    `yaml:"all"`
	Loopback         *bool    `yaml:"loopback"`
	HideZero         *bool    `yaml:"hide_zero_counters"`
	Delay            *float64 `yaml:"delay"`
	FirstMeasurement *float64 `yaml:"first_measurement"`
	Count            *uint64  `yaml:"count"`
	HeaderRepeat     *int     `yaml:"header_repeat"`
	Source           string   `yaml:"source"`
	ProcRoot         string   `yaml:"proc_root"`
	LogLevel         string   `yaml:"log_level"`
}

// Load reads a config file. Unknown keys are rejected.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses config YAML from r. An empty document yields an empty File.
func Decode(r io.Reader) (*File, error) {
	var cfg File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	return &cfg, nil
}
