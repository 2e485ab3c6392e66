package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/freeeve/votesim/pkg/votesim/voting"
)

// RRVConfig parametrizes the RRV multi-winner primary method. K defaults
// to 1.0 when omitted, matching voting.NewRRV.
type RRVConfig struct {
	Ranks int32   `yaml:"ranks"`
	K     float64 `yaml:"k"`
}

// PrimaryMethodConfig is the tagged-variant primary_method slot, required
// only when primary_candidates is set.
type PrimaryMethodConfig struct {
	Type string

	rrv *RRVConfig
}

func (p *PrimaryMethodConfig) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("decoding primary_method: %w", err)
	}
	p.Type = head.Type

	switch head.Type {
	case "rrv":
		p.rrv = &RRVConfig{K: 1.0}
		return node.Decode(p.rrv)
	case "plurality_top_n":
		return nil
	default:
		return fmt.Errorf("unknown primary_method type %q", head.Type)
	}
}

func (p PrimaryMethodConfig) MarshalYAML() (interface{}, error) {
	switch p.Type {
	case "rrv":
		return mergeType(p.Type, p.rrv)
	case "plurality_top_n":
		return mergeType(p.Type, struct{}{})
	default:
		return nil, fmt.Errorf("unknown primary_method type %q", p.Type)
	}
}

// Build constructs the live multi-winner method this config slot
// describes.
func (p *PrimaryMethodConfig) Build() (voting.MultiWinnerMethod, error) {
	switch p.Type {
	case "rrv":
		return voting.NewRRVWithK(p.rrv.Ranks, p.rrv.K), nil
	case "plurality_top_n":
		return voting.NewPluralityTopN(), nil
	default:
		return nil, fmt.Errorf("unknown primary_method type %q", p.Type)
	}
}
