package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/freeeve/votesim/pkg/votesim/consideration"
)

// LikabilityConfig parametrizes consideration.Likability.
type LikabilityConfig struct {
	Mean float64 `yaml:"mean"`
}

// NeuralLikabilityConfig parametrizes consideration.NeuralLikability.
type NeuralLikabilityConfig struct {
	Mean      float64 `yaml:"mean"`
	ModelPath string  `yaml:"model_path"`
}

// IssueAxisConfig is one axis of consideration.IssuesConfig.
type IssueAxisConfig struct {
	Sigma    float64  `yaml:"sigma"`
	Halfcsep float64  `yaml:"halfcsep"`
	Halfvsep *float64 `yaml:"halfvsep"`
	Uniform  bool     `yaml:"uniform"`
	Horizon  float64  `yaml:"horizon"`
}

// IssuesConfig parametrizes consideration.Issues.
type IssuesConfig struct {
	Axes []IssueAxisConfig `yaml:"axes"`
}

// IrrationalConfig parametrizes consideration.Irrational.
type IrrationalConfig struct {
	Sigma            float64 `yaml:"sigma"`
	Camps            int     `yaml:"camps"`
	IndividualismDeg float64 `yaml:"individualism_deg"`
	Centered         bool    `yaml:"centered"`
}

// ConsiderationConfig is a tagged-variant slot in the considerations list.
// Exactly one of the unexported params fields is populated, selected by
// Type.
type ConsiderationConfig struct {
	Type string

	likability       *LikabilityConfig
	neuralLikability *NeuralLikabilityConfig
	issues           *IssuesConfig
	irrational       *IrrationalConfig
}

// UnmarshalYAML decodes the node twice: once for the "type" discriminator,
// once into the variant-specific params struct it selects.
func (c *ConsiderationConfig) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("decoding consideration: %w", err)
	}
	c.Type = head.Type

	switch head.Type {
	case "likability":
		c.likability = &LikabilityConfig{}
		return node.Decode(c.likability)
	case "neural_likability":
		c.neuralLikability = &NeuralLikabilityConfig{}
		return node.Decode(c.neuralLikability)
	case "issues":
		c.issues = &IssuesConfig{}
		return node.Decode(c.issues)
	case "irrational":
		c.irrational = &IrrationalConfig{}
		return node.Decode(c.irrational)
	default:
		return fmt.Errorf("unknown consideration type %q", head.Type)
	}
}

// MarshalYAML renders the variant back out with its type discriminator, so
// CanonicalYAML produces a document Load can parse.
func (c ConsiderationConfig) MarshalYAML() (interface{}, error) {
	switch c.Type {
	case "likability":
		return mergeType(c.Type, c.likability)
	case "neural_likability":
		return mergeType(c.Type, c.neuralLikability)
	case "issues":
		return mergeType(c.Type, c.issues)
	case "irrational":
		return mergeType(c.Type, c.irrational)
	default:
		return nil, fmt.Errorf("unknown consideration type %q", c.Type)
	}
}

// Build constructs the live Consideration this config slot describes.
func (c *ConsiderationConfig) Build() (consideration.Consideration, error) {
	switch c.Type {
	case "likability":
		return consideration.NewLikability(c.likability.Mean), nil
	case "neural_likability":
		return consideration.NewNeuralLikability(c.neuralLikability.Mean, c.neuralLikability.ModelPath), nil
	case "issues":
		axes := make([]consideration.IssueAxis, len(c.issues.Axes))
		for i, a := range c.issues.Axes {
			axes[i] = consideration.IssueAxis{
				Sigma:    a.Sigma,
				Halfcsep: a.Halfcsep,
				Halfvsep: a.Halfvsep,
				Uniform:  a.Uniform,
				Horizon:  a.Horizon,
			}
		}
		return consideration.NewIssues(axes), nil
	case "irrational":
		return consideration.NewIrrational(c.irrational.Sigma, c.irrational.Camps, c.irrational.IndividualismDeg, c.irrational.Centered), nil
	default:
		return nil, fmt.Errorf("unknown consideration type %q", c.Type)
	}
}
