package config

import (
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/freeeve/votesim/pkg/votesim/voting"
)

// parseStrategy maps the config's "honest"/"strategic" strings onto
// voting.Strategy. An empty string defaults to Honest, since most example
// configs only need to name Strategic explicitly.
func parseStrategy(s string) (voting.Strategy, error) {
	switch strings.ToLower(s) {
	case "", "honest":
		return voting.Honest, nil
	case "strategic":
		return voting.Strategic, nil
	default:
		return voting.Honest, fmt.Errorf("unknown strategy %q", s)
	}
}

func strategyName(s voting.Strategy) string {
	if s == voting.Strategic {
		return "strategic"
	}
	return "honest"
}

// RangeConfig parametrizes Range (and, with nranks=2, Approval) voting.
type RangeConfig struct {
	Nranks                 int32   `yaml:"nranks"`
	StrategicStretchFactor float64 `yaml:"strategic_stretch_factor"`
}

// BordaConfig parametrizes Borda.
type BordaConfig struct {
	RankTopN int `yaml:"rank_top_n"`
}

// MultivoteConfig parametrizes Multivote.
type MultivoteConfig struct {
	Votes      int32   `yaml:"votes"`
	SpreadFact float64 `yaml:"spread_fact"`
}

// STARConfig parametrizes STAR voting.
type STARConfig struct {
	Nranks                 int32   `yaml:"nranks"`
	StrategicStretchFactor float64 `yaml:"strategic_stretch_factor"`
}

// MethodConfig is a tagged-variant slot in the methods list. Strategy
// applies to every variant except ranked_pairs and minimax, which are
// always Honest and ignore it.
type MethodConfig struct {
	Type     string
	Strategy string

	rangeVoting *RangeConfig
	borda       *BordaConfig
	multivote   *MultivoteConfig
	star        *STARConfig
}

func (m *MethodConfig) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type     string `yaml:"type"`
		Strategy string `yaml:"strategy"`
	}
	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("decoding method: %w", err)
	}
	m.Type, m.Strategy = head.Type, head.Strategy

	switch head.Type {
	case "plurality", "irv", "btrirv", "ranked_pairs", "minimax":
		return nil
	case "range":
		m.rangeVoting = &RangeConfig{}
		return node.Decode(m.rangeVoting)
	case "borda":
		m.borda = &BordaConfig{}
		return node.Decode(m.borda)
	case "multivote":
		m.multivote = &MultivoteConfig{}
		return node.Decode(m.multivote)
	case "star":
		m.star = &STARConfig{}
		return node.Decode(m.star)
	default:
		return fmt.Errorf("unknown method type %q", head.Type)
	}
}

func (m MethodConfig) MarshalYAML() (interface{}, error) {
	var params interface{}
	switch m.Type {
	case "plurality", "irv", "btrirv", "ranked_pairs", "minimax":
		params = struct{}{}
	case "range":
		params = m.rangeVoting
	case "borda":
		params = m.borda
	case "multivote":
		params = m.multivote
	case "star":
		params = m.star
	default:
		return nil, fmt.Errorf("unknown method type %q", m.Type)
	}
	out, err := mergeType(m.Type, params)
	if err != nil {
		return nil, err
	}
	if m.Type != "ranked_pairs" && m.Type != "minimax" {
		out.(map[string]interface{})["strategy"] = strategyName(mustParseStrategy(m.Strategy))
	}
	return out, nil
}

func mustParseStrategy(s string) voting.Strategy {
	strat, err := parseStrategy(s)
	if err != nil {
		return voting.Honest
	}
	return strat
}

// Build constructs the live single-winner Method this config slot
// describes, sized for ncand candidates and drawing from rng.
func (m *MethodConfig) Build(ncand int, rng *rand.Rand) (voting.Method, error) {
	strat, err := parseStrategy(m.Strategy)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", m.Type, err)
	}

	switch m.Type {
	case "plurality":
		return voting.NewPlurality(strat, ncand, rng), nil
	case "range":
		return voting.NewRangeVoting(strat, m.rangeVoting.Nranks, m.rangeVoting.StrategicStretchFactor, ncand, rng), nil
	case "irv":
		return voting.NewInstantRunoff(strat, ncand, rng), nil
	case "btrirv":
		return voting.NewBTRIRV(strat, ncand, rng), nil
	case "borda":
		return voting.NewBorda(strat, m.borda.RankTopN, ncand, rng), nil
	case "multivote":
		return voting.NewMultivote(strat, m.multivote.Votes, m.multivote.SpreadFact, ncand, rng), nil
	case "star":
		return voting.NewSTAR(strat, m.star.Nranks, m.star.StrategicStretchFactor, ncand, rng), nil
	case "ranked_pairs":
		return voting.NewRankedPairs(ncand, rng), nil
	case "minimax":
		return voting.NewMinimax(), nil
	default:
		return nil, fmt.Errorf("unknown method type %q", m.Type)
	}
}
