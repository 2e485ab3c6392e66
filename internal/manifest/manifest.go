// Package manifest writes a JWT-signed summary of a completed run
// alongside the columnar output file, so a downstream consumer holding
// the shared signing key can verify the output was produced by an
// un-tampered configuration without trusting the file's own metadata.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freeeve/votesim/internal/tracker"
)

// MethodSummary is one method's final aggregate, as recorded in the
// manifest claims.
type MethodSummary struct {
	Name             string  `json:"name"`
	Trials           int     `json:"trials"`
	MeanRegret       float64 `json:"mean_regret"`
	RegretStdDev     float64 `json:"regret_stddev"`
	SuboptFraction   float64 `json:"suboptimal_fraction"`
	MeanSuboptRegret float64 `json:"mean_suboptimal_regret"`
}

// Claims is the JWT payload signed into a run's manifest.
type Claims struct {
	ConfigSHA256 string          `json:"config_sha256"`
	Trials       int             `json:"trials"`
	DurationMs   int64           `json:"duration_ms"`
	Methods      []MethodSummary `json:"methods"`
	jwt.RegisteredClaims
}

// Signer holds the shared HMAC key a run manifest is signed with.
type Signer struct {
	secret []byte
}

// NewSigner returns a Signer using key as the HMAC-SHA256 secret.
func NewSigner(key string) *Signer {
	return &Signer{secret: []byte(key)}
}

// ConfigHash returns the hex-encoded SHA-256 of a run's canonical YAML
// configuration, the value embedded in the manifest's claims.
func ConfigHash(canonicalYAML []byte) string {
	sum := sha256.Sum256(canonicalYAML)
	return hex.EncodeToString(sum[:])
}

// Sign builds and signs a run's manifest claims, returning the compact
// JWS string.
func (s *Signer) Sign(configSHA256 string, trials int, start, end time.Time, reports []*tracker.MethodReport) (string, error) {
	methods := make([]MethodSummary, len(reports))
	for i, r := range reports {
		frac := 0.0
		if r.Ntrials > 0 {
			frac = float64(r.NtrialsSubopt) / float64(r.Ntrials)
		}
		methods[i] = MethodSummary{
			Name:             r.Name,
			Trials:           r.Ntrials,
			MeanRegret:       r.MeanRegret.Mean(),
			RegretStdDev:     r.MeanRegret.SampleStdDev(),
			SuboptFraction:   frac,
			MeanSuboptRegret: r.MeanSuboptRegret.Mean(),
		}
	}

	claims := &Claims{
		ConfigSHA256: configSHA256,
		Trials:       trials,
		DurationMs:   end.Sub(start).Milliseconds(),
		Methods:      methods,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(end),
			NotBefore: jwt.NewNumericDate(start),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing run manifest: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a manifest JWS string against the signer's
// key, returning the claims it carries.
func (s *Signer) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method)
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying run manifest: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid run manifest")
	}
	return claims, nil
}

// WriteFile signs claims for the given run and writes the compact JWS to
// path.
func WriteFile(path string, s *Signer, configSHA256 string, trials int, start, end time.Time, reports []*tracker.MethodReport) error {
	token, err := s.Sign(configSHA256, trials, start, end, reports)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(token), 0o644); err != nil {
		return fmt.Errorf("writing manifest file %s: %w", path, err)
	}
	return nil
}
