package consideration

import (
	"math/rand"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"
)

// NumCandidateFeatures is the width of the per-candidate feature vector fed
// to the bias network: a chi-square draw (the same family Likability uses)
// plus the candidate's index, normalized.
const NumCandidateFeatures = 2

// NewNeuralLikability attempts to load an ONNX bias model from modelPath.
// On any load failure it logs and falls back to a plain Likability
// consideration using the same mean, mirroring the attempt-then-fallback
// pattern used elsewhere in this codebase for optional model-backed
// strategies.
func NewNeuralLikability(mean float64, modelPath string) Consideration {
	if modelPath == "" {
		return NewLikability(mean)
	}
	nl, err := newNeuralLikability(mean, modelPath)
	if err != nil {
		log.Warn().Err(err).Str("model_path", modelPath).Msg("neural likability model load failed, falling back to likability")
		return NewLikability(mean)
	}
	return nl
}

// NeuralLikability scores each candidate with a small feed-forward ONNX
// model instead of Likability's closed-form chi-square draw. The model
// receives, per candidate, a chi-square variate (scaled by Mean) and the
// candidate's normalized index, and returns a single bias score.
type NeuralLikability struct {
	Mean  float64
	model *gonnx.Model
	mu    sync.Mutex

	scores []float64
}

func newNeuralLikability(mean float64, modelPath string) (*NeuralLikability, error) {
	model, err := gonnx.NewModelFromFile(modelPath)
	if err != nil {
		return nil, err
	}
	return &NeuralLikability{Mean: mean, model: model}, nil
}

func (n *NeuralLikability) AddToScores(scores [][]float64, rng *rand.Rand) {
	ncand := 0
	if len(scores) > 0 {
		ncand = len(scores[0])
	}

	features := make([]float32, ncand*NumCandidateFeatures)
	for j := 0; j < ncand; j++ {
		x := rng.NormFloat64()
		features[j*NumCandidateFeatures] = float32(x*x) * float32(n.Mean)
		if ncand > 1 {
			features[j*NumCandidateFeatures+1] = float32(j) / float32(ncand-1)
		}
	}

	featTensor := tensor.New(
		tensor.WithShape(ncand, NumCandidateFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(features),
	)
	inputs := gonnx.Tensors{"candidate_features": featTensor}

	n.mu.Lock()
	outputs, err := n.model.Run(inputs)
	n.mu.Unlock()

	bias := make([]float64, ncand)
	if err != nil {
		log.Warn().Err(err).Msg("neural likability inference failed, scores unbiased this trial")
	} else if out, ok := outputs["bias"]; ok {
		switch d := out.Data().(type) {
		case []float32:
			for j := 0; j < ncand && j < len(d); j++ {
				bias[j] = float64(d[j])
			}
		case []float64:
			for j := 0; j < ncand && j < len(d); j++ {
				bias[j] = d[j]
			}
		default:
			log.Warn().Msgf("neural likability: unexpected output type %T", d)
		}
	}

	n.scores = bias
	for j := 0; j < ncand; j++ {
		for i := range scores {
			scores[i][j] += bias[j]
		}
	}
}

func (n *NeuralLikability) Dim() int { return 1 }

func (n *NeuralLikability) Name() string { return "likability" }

func (n *NeuralLikability) PushPositions(report func(candidate int, pos []float64), finalCandidates []int) {
	for _, fc := range finalCandidates {
		report(fc, []float64{n.scores[fc]})
	}
}
