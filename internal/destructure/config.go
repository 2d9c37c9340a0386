package destructureinternal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HalsekiRaika/destructure/internal/destructure/synth"
)

// ConfigFile is the optional per-project configuration file, looked up in the
// working directory.
const ConfigFile = ".destructure.yaml"

// Config carries the generator settings. Zero fields fall back to the
// documented defaults.
type Config struct {
	// Prefix of companion type names. Default "Destruct".
	Prefix string `yaml:"prefix"`

	// MutSuffix of mutable view type names. Default "Mut".
	MutSuffix string `yaml:"mut_suffix"`

	// RefSuffix of read-only view type names. Default "Ref".
	RefSuffix string `yaml:"ref_suffix"`

	// Output is the generated file name, one per package.
	// Default "destructure_gen.go".
	Output string `yaml:"output"`

	// Tags are extra build tags for package loading.
	Tags string `yaml:"tags"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Prefix:    "Destruct",
		MutSuffix: "Mut",
		RefSuffix: "Ref",
		Output:    "destructure_gen.go",
	}
}

// LoadConfig reads ConfigFile from dir if present. A missing file is not an
// error; it yields the defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := Config{}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg.withDefaults(), nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults fills zero fields with the defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	if c.MutSuffix == "" {
		c.MutSuffix = def.MutSuffix
	}
	if c.RefSuffix == "" {
		c.RefSuffix = def.RefSuffix
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	return c
}

// Scheme maps the config onto the synthesizer naming scheme.
func (c Config) Scheme() synth.Scheme {
	c = c.withDefaults()
	return synth.Scheme{
		Prefix:    c.Prefix,
		MutSuffix: c.MutSuffix,
		RefSuffix: c.RefSuffix,
	}
}
