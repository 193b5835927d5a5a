// Package config loads the tinytz command configuration.
//
// Configuration comes from a single YAML file named by the --config flag
// or, failing that, the TINYTZ_CONFIG environment variable. There is no
// discovery. Without either, Default is used as is.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tinytz/posix/tzposix"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "TINYTZ_CONFIG"

// Config is the tinytz command configuration.
type Config struct {
	// Parser is "tiny" or "glibc".
	Parser string `yaml:"parser"`

	// Commit is "atomic" or "partial".
	Commit string `yaml:"commit"`

	// Year whose transitions are reported. Zero means the current year.
	Year int `yaml:"year"`

	// LogLevel is one of trace, debug, info, warning, error, fatal.
	LogLevel string `yaml:"loglevel"`

	// ZoneinfoDirs are searched, in order, for TZif files.
	ZoneinfoDirs []string `yaml:"zoneinfo_dirs"`

	// Zones are decoded when no descriptor is given on the command line.
	Zones []Zone `yaml:"zones"`
}

// Zone pairs an IANA name with the descriptor expected to match it.
// Name may be empty for zones that are only decoded, never verified.
type Zone struct {
	Name       string `yaml:"name"`
	Descriptor string `yaml:"descriptor"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Parser:   "tiny",
		Commit:   tzposix.CommitAtomic.String(),
		LogLevel: "info",
		ZoneinfoDirs: []string{
			// Update path according to your OS
			"/usr/share/zoneinfo/",
			"/usr/share/lib/zoneinfo/",
			"/usr/lib/locale/TZ/",
		},
	}
}

// Load reads path, or the file named by TINYTZ_CONFIG when path is empty,
// over Default. Unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the fields that name something.
func (c *Config) Validate() error {
	if _, err := tzposix.LookupParser(c.Parser); err != nil {
		return err
	}
	if _, err := c.CommitMode(); err != nil {
		return err
	}
	if c.Year < 0 {
		return errors.Errorf("year %d is negative", c.Year)
	}
	for i, z := range c.Zones {
		if z.Descriptor == "" {
			return errors.Errorf("zone %d (%q) has no descriptor", i, z.Name)
		}
	}
	return nil
}

// CommitMode converts Commit.
func (c *Config) CommitMode() (tzposix.CommitMode, error) {
	switch c.Commit {
	case "", tzposix.CommitAtomic.String():
		return tzposix.CommitAtomic, nil
	case tzposix.CommitPartial.String():
		return tzposix.CommitPartial, nil
	}
	return 0, errors.Errorf("unknown commit mode %q, want atomic or partial", c.Commit)
}
