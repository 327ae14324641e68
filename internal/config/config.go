// Package config reads ~/.vitae.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = ".vitae.yaml"

type Config struct {
	SaveDirectory string  `yaml:"save_directory"`
	Database      string  `yaml:"database"`
	ShowGrid      bool    `yaml:"show_grid"`
	Dark          bool    `yaml:"dark"`
	HistoryLimit  int     `yaml:"history_limit"`
	ExportScale   float64 `yaml:"export_scale"`
	PageWidth     float64 `yaml:"page_width"`
	PageHeight    float64 `yaml:"page_height"`
	Confirmations bool    `yaml:"confirmations"`
}

func Default() *Config {
	return &Config{
		Database:      filepath.Join(Dir(), "canvas.db"),
		ShowGrid:      true,
		HistoryLimit:  100,
		ExportScale:   2,
		PageWidth:     1200,
		PageHeight:    1600,
		Confirmations: true,
	}
}

// Dir is where vitae keeps its database and log.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vitae"
	}
	return filepath.Join(home, ".vitae")
}

// DefaultPath is ~/.vitae.yaml, or the bare file name without a home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.SaveDirectory = expand(cfg.SaveDirectory)
	cfg.Database = expand(cfg.Database)
	if cfg.Database == "" {
		cfg.Database = Default().Database
	}
	if cfg.HistoryLimit < 0 {
		cfg.HistoryLimit = 0
	}
	if cfg.ExportScale <= 0 {
		cfg.ExportScale = 2
	}
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		cfg.PageWidth, cfg.PageHeight = 1200, 1600
	}
	return cfg, nil
}

func expand(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

// GetSavePath places filename in the save directory, creating it.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
