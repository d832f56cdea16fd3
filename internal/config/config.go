// Package config loads the YAML options file a tsz run is configured by,
// grounded on the teacher's internal/ext/config.go funxy.yaml loader: the
// same decode-validate-default shape, the same upward directory search for
// an implicit config file, and the same tolerant-of-unknown-keys posture.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mohsen1/tsz-sub030/internal/checker"
	"gopkg.in/yaml.v3"
)

// fileNames are the implicit config file names FindConfig looks for,
// mirroring the teacher's funxy.yaml/funxy.yml pair.
var fileNames = []string{"tsz.yaml", "tsz.yml"}

// Config is the on-disk shape of a tsz.yaml file: the checker's strictness
// flags plus the file-selection and output knobs the CLI driver needs that
// the checker itself has no business knowing about.
type Config struct {
	Strict                       bool     `yaml:"strict"`
	StrictNullChecks             bool     `yaml:"strictNullChecks"`
	StrictFunctionTypes          bool     `yaml:"strictFunctionTypes"`
	StrictPropertyInitialization bool     `yaml:"strictPropertyInitialization"`
	ExactOptionalPropertyTypes   bool     `yaml:"exactOptionalPropertyTypes"`
	NoUncheckedIndexedAccess     bool     `yaml:"noUncheckedIndexedAccess"`
	NoImplicitAny                bool     `yaml:"noImplicitAny"`
	Target                       string   `yaml:"target"`
	Module                       string   `yaml:"module"`
	CheckJS                      bool     `yaml:"checkJs"`
	Lib                          []string `yaml:"lib"`

	// Include/Exclude select which files a batch run compiles, the way
	// tsconfig.json's own include/exclude globs do.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

var validTargets = map[string]bool{
	"ES5": true, "ES2015": true, "ES2017": true, "ES2020": true,
	"ES2022": true, "ESNext": true,
}

var validModules = map[string]bool{
	"CommonJS": true, "ES2015": true, "ES2020": true, "ESNext": true, "NodeNext": true,
}

// LoadConfig reads and parses path, the way the teacher's LoadConfig reads
// and parses a funxy.yaml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes data as YAML, then validates and defaults it.
// path is only used in error messages, matching the teacher's signature.
func ParseConfig(data []byte, path string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.validate(path); err != nil {
		return nil, err
	}
	c.setDefaults()
	return &c, nil
}

// FindConfig walks up from dir looking for tsz.yaml/tsz.yml, mirroring the
// teacher's FindConfig directory search for funxy.yaml.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no tsz.yaml found in %s or any parent directory", dir)
		}
		dir = parent
	}
}

// validate rejects combinations the checker can't make sense of. Unknown
// keys are not an error here — yaml.Unmarshal silently drops them into
// nothing, the same tolerant posture the teacher's own config parsing
// takes (a typo'd key becomes a silent no-op, not a fatal error).
func (c *Config) validate(path string) error {
	if c.Target != "" && !validTargets[c.Target] {
		return fmt.Errorf("%s: unknown target %q", path, c.Target)
	}
	if c.Module != "" && !validModules[c.Module] {
		return fmt.Errorf("%s: unknown module %q", path, c.Module)
	}
	if len(c.Include) > 0 && len(c.Exclude) > 0 {
		for _, inc := range c.Include {
			for _, exc := range c.Exclude {
				if inc == exc {
					return fmt.Errorf("%s: %q listed in both include and exclude", path, inc)
				}
			}
		}
	}
	return nil
}

// setDefaults fills in the fields tsc itself defaults when a config omits
// them.
func (c *Config) setDefaults() {
	if c.Target == "" {
		c.Target = "ESNext"
	}
	if c.Module == "" {
		c.Module = "ESNext"
	}
	if len(c.Include) == 0 {
		c.Include = []string{"**/*.ts", "**/*.tsx"}
	}
}

// CheckerOptions converts the loaded config into the checker.Options
// struct the checker actually consumes.
func (c *Config) CheckerOptions() checker.Options {
	return checker.Options{
		Strict:                       c.Strict,
		StrictNullChecks:             c.StrictNullChecks,
		StrictFunctionTypes:          c.StrictFunctionTypes,
		StrictPropertyInitialization: c.StrictPropertyInitialization,
		ExactOptionalPropertyTypes:   c.ExactOptionalPropertyTypes,
		NoUncheckedIndexedAccess:     c.NoUncheckedIndexedAccess,
		NoImplicitAny:                c.NoImplicitAny,
		Target:                       c.Target,
		Module:                       c.Module,
		CheckJS:                      c.CheckJS,
		Lib:                          c.Lib,
	}.Normalize()
}
