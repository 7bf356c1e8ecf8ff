package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/triangle/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

// MaxSamples is the highest multisample count we will ever ask GLFW for
const MaxSamples = 32

type Config struct {
	Window      WindowCfg
	Surface     SurfaceCfg
	ClearColour string  `yaml:"clear_colour"`
	ShaderDir   CfgPath `yaml:"shader_dir"`
	Watch       bool
	Api         *ApiCfg

	// Path is the absolute filename this config was parsed from, if any
	Path string `yaml:"-"`
}

type WindowCfg struct {
	Title       string
	Width       int
	Height      int
	Resizable   bool
	Transparent bool
}

type SurfaceCfg struct {
	PreferAlpha  bool `yaml:"prefer_alpha"`
	MaxSamples   int  `yaml:"max_samples"`
	SwapInterval int  `yaml:"swap_interval"`
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default is what the demo runs with when no config file is given
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:     "Hello triangle!",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		Surface: SurfaceCfg{
			PreferAlpha:  true,
			MaxSamples:   16,
			SwapInterval: 0,
		},
		ClearColour: "#1a334dff",
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	cfg.Path = absFilename
	return cfg, nil
}

// Decode reads YAML over the defaults and validates the result
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	err := yaml.NewDecoder(r).Decode(cfg)
	if err != nil && err != io.EOF {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	if err := c.Surface.Validate(); err != nil {
		return fmt.Errorf("surface is invalid: %w", err)
	}
	if c.ClearColour == "" {
		return fmt.Errorf("please set clear_colour in the config")
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}
	if c.Api != nil {
		if err := c.Api.Validate(); err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", w.Width, w.Height)
	}
	return nil
}

func (s *SurfaceCfg) Validate() error {
	if s.MaxSamples < 0 || s.MaxSamples > MaxSamples {
		return fmt.Errorf("max_samples must be between 0 and %d", MaxSamples)
	}
	if s.SwapInterval < 0 {
		return fmt.Errorf("swap_interval must be nonnegative")
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d", c.Window.Title, c.Window.Width, c.Window.Height))
	if c.Window.Resizable {
		b.WriteString(" resizable")
	}
	if c.Window.Transparent {
		b.WriteString(" transparent")
	}

	b.WriteString("\n\nSurface:\n")
	b.WriteString(fmt.Sprintf("  alpha=%t samples<=%d swap_interval=%d\n", c.Surface.PreferAlpha, c.Surface.MaxSamples, c.Surface.SwapInterval))

	b.WriteString(fmt.Sprintf("\nClear colour: %s\n", c.ClearColour))
	if c.ShaderDir != "" {
		b.WriteString(fmt.Sprintf("Shaders: %s\n", c.ShaderDir))
	}
	if c.Api != nil {
		b.WriteString(fmt.Sprintf("API: %s\n", c.Api.Bind))
	}

	return b.String()
}
