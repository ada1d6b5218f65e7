// Package config loads StoryCuts settings.
//
// The board reads a YAML file; the proxy reads its environment so the API
// key never ships with the board. Board config locations, in priority order:
//  1. $STORYCUTS_CONFIG
//  2. ./storycuts.yaml
//  3. ~/.config/storycuts/config.yaml
//
// A missing file means defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"StoryCuts/internal/state"
)

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CameraConfig struct {
	Policy  string  `yaml:"policy"` // clamp | wrap
	Padding float64 `yaml:"padding"`
}

type SelectionConfig struct {
	Policy string `yaml:"policy"` // append-only | toggle
}

type StoryConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Timeout         time.Duration `yaml:"timeout"`
	Offline         bool          `yaml:"offline"`
	Discover        bool          `yaml:"discover"`
	DiscoverTimeout time.Duration `yaml:"discover_timeout"`
}

type Cut struct {
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Config is the board configuration.
type Config struct {
	Plane        Size            `yaml:"plane"`
	Margin       float64         `yaml:"margin"`
	Spacing      float64         `yaml:"spacing"`
	CutSize      Size            `yaml:"cut_size"`
	Camera       CameraConfig    `yaml:"camera"`
	Selection    SelectionConfig `yaml:"selection"`
	TapTolerance float64         `yaml:"tap_tolerance"`
	Seed         uint64          `yaml:"seed"` // 0 picks a random seed per session
	Story        StoryConfig     `yaml:"story"`
	Cuts         []Cut           `yaml:"cuts"`
}

var defaultCuts = []Cut{
	{Description: "Lying on the bed, staring at nothing.", Image: "img/cut_1.png"},
	{Description: "A tear runs down.", Image: "img/cut_2.png"},
	{Description: "Whoosh,\nthe sound of the sea pierces my ears.", Image: "img/cut_3.png"},
	{Description: "Slowly sinking into the water.\nTap, something touches me.", Image: "img/cut_4.png"},
	{Description: "Opening my eyes under the water.", Image: "img/cut_5.png"},
	{Description: "I sit up.\nWow, it's the sea.", Image: "img/cut_6.png"},
	{Description: "The sea reaches out a hand.\nI reach out mine.", Image: "img/cut_7.png"},
	{Description: "Hold me.\nThe sea embraces me.", Image: "img/cut_8.png"},
	{Description: "Lying on the bed.\nDamp.", Image: "img/cut_9.png"},
	{Description: "Curling up.\nThe sound of the sea surrounds me.", Image: "img/cut_10.png"},
}

// DefaultConfig returns the settings of the installation piece.
func DefaultConfig() *Config {
	cuts := make([]Cut, len(defaultCuts))
	copy(cuts, defaultCuts)
	return &Config{
		Plane:        Size{Width: 3000, Height: 1500},
		Margin:       200,
		Spacing:      10,
		CutSize:      Size{Width: 350, Height: 200},
		Camera:       CameraConfig{Policy: string(state.PolicyClamp), Padding: 70},
		Selection:    SelectionConfig{Policy: string(state.PolicyAppendOnly)},
		TapTolerance: state.DefaultTapTolerance,
		Story: StoryConfig{
			Timeout:         8 * time.Second,
			Discover:        true,
			DiscoverTimeout: 2 * time.Second,
		},
		Cuts: cuts,
	}
}

// Load finds and loads the config file, or returns defaults if none is found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the config at path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Cuts = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Plane.Width <= 0 || c.Plane.Height <= 0 {
		c.Plane = d.Plane
	}
	if c.CutSize.Width <= 0 || c.CutSize.Height <= 0 {
		c.CutSize = d.CutSize
	}
	if c.Camera.Policy == "" {
		c.Camera.Policy = d.Camera.Policy
	}
	if c.Selection.Policy == "" {
		c.Selection.Policy = d.Selection.Policy
	}
	if c.TapTolerance <= 0 {
		c.TapTolerance = d.TapTolerance
	}
	if c.Story.Timeout <= 0 {
		c.Story.Timeout = d.Story.Timeout
	}
	if c.Story.DiscoverTimeout <= 0 {
		c.Story.DiscoverTimeout = d.Story.DiscoverTimeout
	}
	if len(c.Cuts) == 0 {
		c.Cuts = d.Cuts
	}
}

// Validate checks the values that would otherwise fail later, at layout time.
func (c *Config) Validate() error {
	var errs []error
	if _, err := state.ParseBoundaryPolicy(c.Camera.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := state.ParseSelectionPolicy(c.Selection.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Margin < 0 || c.Spacing < 0 {
		errs = append(errs, fmt.Errorf("margin and spacing must not be negative"))
	}
	for i, cut := range c.Cuts {
		if cut.Description == "" {
			errs = append(errs, fmt.Errorf("cut %d has no description", i+1))
		}
	}
	return errors.Join(errs...)
}

// Settings converts the config into controller settings.
func (c *Config) Settings() state.Settings {
	camera, _ := state.ParseBoundaryPolicy(c.Camera.Policy)
	selection, _ := state.ParseSelectionPolicy(c.Selection.Policy)

	bindings := make([]state.CutBinding, len(c.Cuts))
	for i, cut := range c.Cuts {
		bindings[i] = state.CutBinding{Description: cut.Description, Image: cut.Image}
	}

	return state.Settings{
		Layout: state.LayoutParams{
			Bounds:   state.Size{W: c.Plane.Width, H: c.Plane.Height},
			Margin:   c.Margin,
			Spacing:  c.Spacing,
			CutSize:  state.Size{W: c.CutSize.Width, H: c.CutSize.Height},
			Count:    len(c.Cuts),
			Bindings: bindings,
		},
		CameraPolicy:    camera,
		CameraPadding:   c.Camera.Padding,
		SelectionPolicy: selection,
		TapTolerance:    c.TapTolerance,
	}
}

// FindConfigPath returns the first config file that exists, or "".
func FindConfigPath() string {
	if p := os.Getenv("STORYCUTS_CONFIG"); p != "" {
		return p
	}
	candidates := []string{"storycuts.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "storycuts", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
