package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleYAML = `
voters: 500
candidates: 4
primary_candidates: 9
trials: 1000
workers: 4
seed: 42
output_path: out.parquet
progress_addr: ":8090"

considerations:
  - type: likability
    mean: 1.0
  - type: issues
    axes:
      - sigma: 1.0
        halfcsep: 2.0
        uniform: true
  - type: irrational
    sigma: 0.5
    camps: 3
    individualism_deg: 30
    centered: true

methods:
  - type: plurality
    strategy: honest
  - type: plurality
    strategy: strategic
  - type: range
    strategy: honest
    nranks: 6
  - type: star
    strategy: strategic
    nranks: 6
    strategic_stretch_factor: 2.0
  - type: minimax

primary_method:
  type: rrv
  ranks: 11
`

func loadString(t *testing.T, doc string) *Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return cfg
}

func TestLoadDecodesTaggedVariants(t *testing.T) {
	cfg := loadString(t, sampleYAML)

	if cfg.Voters != 500 || cfg.Candidates != 4 {
		t.Fatalf("voters/candidates = %d/%d, want 500/4", cfg.Voters, cfg.Candidates)
	}
	if cfg.PrimaryCandidates == nil || *cfg.PrimaryCandidates != 9 {
		t.Fatalf("primary_candidates = %v, want 9", cfg.PrimaryCandidates)
	}
	if len(cfg.Considerations) != 3 {
		t.Fatalf("len(considerations) = %d, want 3", len(cfg.Considerations))
	}
	if len(cfg.Methods) != 5 {
		t.Fatalf("len(methods) = %d, want 5", len(cfg.Methods))
	}
	if cfg.PrimaryMethod == nil || cfg.PrimaryMethod.Type != "rrv" {
		t.Fatalf("primary_method = %+v, want type rrv", cfg.PrimaryMethod)
	}
}

func TestConsiderationBuild(t *testing.T) {
	cfg := loadString(t, sampleYAML)
	for i, cc := range cfg.Considerations {
		c, err := cc.Build()
		if err != nil {
			t.Fatalf("considerations[%d].Build() error: %v", i, err)
		}
		if c.Name() == "" {
			t.Errorf("considerations[%d].Name() is empty", i)
		}
	}
}

func TestMethodBuild(t *testing.T) {
	cfg := loadString(t, sampleYAML)
	rng := rand.New(rand.NewSource(1))
	for i, mc := range cfg.Methods {
		m, err := mc.Build(cfg.Candidates, rng)
		if err != nil {
			t.Fatalf("methods[%d].Build() error: %v", i, err)
		}
		if m.ColumnName() == "" {
			t.Errorf("methods[%d].ColumnName() is empty", i)
		}
	}

	wantStrats := []string{"honest", "strategic", "honest", "strategic", "honest"}
	for i, mc := range cfg.Methods {
		m, _ := mc.Build(cfg.Candidates, rng)
		if got := strategyName(m.Strat()); got != wantStrats[i] {
			t.Errorf("methods[%d].Strat() = %s, want %s", i, got, wantStrats[i])
		}
	}
}

func TestPrimaryMethodBuild(t *testing.T) {
	cfg := loadString(t, sampleYAML)
	pm, err := cfg.PrimaryMethod.Build()
	if err != nil {
		t.Fatalf("PrimaryMethod.Build() error: %v", err)
	}
	if pm == nil {
		t.Fatal("PrimaryMethod.Build() returned nil")
	}
}

func TestValidateRejectsMissingPrimaryMethod(t *testing.T) {
	doc := `
voters: 10
candidates: 3
primary_candidates: 5
trials: 10
output_path: out.parquet
methods:
  - type: plurality
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for primary_candidates without primary_method")
	}
}

func TestValidateRejectsTooFewCandidates(t *testing.T) {
	doc := `
voters: 10
candidates: 1
trials: 10
output_path: out.parquet
methods:
  - type: plurality
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for candidates < 2")
	}
}

func TestValidateRejectsNoMethods(t *testing.T) {
	doc := `
voters: 10
candidates: 3
trials: 10
output_path: out.parquet
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty methods list")
	}
}

func TestUnknownConsiderationTypeRejected(t *testing.T) {
	doc := `
voters: 10
candidates: 3
trials: 10
output_path: out.parquet
considerations:
  - type: bogus
methods:
  - type: plurality
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(doc), &cfg); err == nil {
		t.Fatal("expected error decoding unknown consideration type")
	}
}

func TestCanonicalYAMLRoundTrips(t *testing.T) {
	cfg := loadString(t, sampleYAML)

	data, err := cfg.CanonicalYAML()
	if err != nil {
		t.Fatalf("CanonicalYAML() error: %v", err)
	}

	var reparsed Config
	if err := yaml.Unmarshal(data, &reparsed); err != nil {
		t.Fatalf("re-parsing canonical YAML: %v", err)
	}
	if len(reparsed.Methods) != len(cfg.Methods) {
		t.Fatalf("round-tripped methods = %d, want %d", len(reparsed.Methods), len(cfg.Methods))
	}
	if reparsed.PrimaryMethod == nil || reparsed.PrimaryMethod.Type != "rrv" {
		t.Fatalf("round-tripped primary_method = %+v, want type rrv", reparsed.PrimaryMethod)
	}
}
