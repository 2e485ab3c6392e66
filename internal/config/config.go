// Package config decodes the YAML run configuration into typed values and
// builds the live consideration/method instances each orchestrator batch
// needs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the decoded top-level run configuration.
type Config struct {
	Voters            int    `yaml:"voters"`
	Candidates        int    `yaml:"candidates"`
	PrimaryCandidates *int   `yaml:"primary_candidates"`
	Trials            int    `yaml:"trials"`
	Workers           int    `yaml:"workers"`
	Seed              int64  `yaml:"seed"`
	OutputPath        string `yaml:"output_path"`
	LogLevel          string `yaml:"log_level"`
	ProgressAddr      string `yaml:"progress_addr"`

	ManifestPath       string `yaml:"manifest_path"`
	ManifestSigningKey string `yaml:"manifest_signing_key"`

	Considerations []ConsiderationConfig `yaml:"considerations"`
	Methods        []MethodConfig        `yaml:"methods"`
	PrimaryMethod  *PrimaryMethodConfig  `yaml:"primary_method"`
}

// Load reads and decodes path, returning a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{LogLevel: "info"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot catch purely by YAML shape:
// positivity, the primary-candidates/primary-method pairing, and the
// presence of at least one voting method.
func (c *Config) Validate() error {
	if c.Voters <= 0 {
		return fmt.Errorf("voters must be positive, got %d", c.Voters)
	}
	if c.Candidates < 2 {
		return fmt.Errorf("candidates must be at least 2, got %d", c.Candidates)
	}
	if c.PrimaryCandidates != nil {
		if *c.PrimaryCandidates < c.Candidates {
			return fmt.Errorf("primary_candidates (%d) must be >= candidates (%d)", *c.PrimaryCandidates, c.Candidates)
		}
		if c.PrimaryMethod == nil {
			return fmt.Errorf("primary_method is required when primary_candidates is set")
		}
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if len(c.Methods) == 0 {
		return fmt.Errorf("methods must list at least one voting method")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	return nil
}

// CanonicalYAML re-serializes the config for embedding as output-file
// provenance metadata. It round-trips through each tagged variant's
// MarshalYAML so the recorded document reflects the fully-resolved
// configuration, not just the scalars Load saw verbatim.
func (c *Config) CanonicalYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling canonical config: %w", err)
	}
	return data, nil
}

// mergeType marshals v (a variant's parameter struct) to YAML, then
// re-parses it into a map with a "type" discriminator added, so Marshal
// output for a tagged-variant slot looks like the document Load accepts.
func mergeType(typ string, v interface{}) (interface{}, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s params: %w", typ, err)
	}
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("re-parsing %s params: %w", typ, err)
	}
	m["type"] = typ
	return m, nil
}
