package output

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/freeeve/votesim/pkg/votesim/consideration"
	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// BatchBuilder accumulates one batch's trial rows into Arrow column
// builders, in the exact field order Schema produces. A batch worker owns
// one BatchBuilder exclusively and appends one row per trial.
type BatchBuilder struct {
	ncand          int
	considerations []consideration.Consideration

	idealBldr         *array.Int32Builder
	regretBldr        *array.FixedSizeListBuilder
	considerationBlds []*array.FixedSizeListBuilder
	covBldr           *array.ListBuilder
	numSmithBldr      *array.Int32Builder
	inSmithBldr       *array.FixedSizeListBuilder

	rows int
}

// NewBatchBuilder allocates column builders sized for ncand candidates and
// the given considerations, reserving capacity for maxTrials rows.
func NewBatchBuilder(mem memory.Allocator, ncand int, considerations []consideration.Consideration, maxTrials int) *BatchBuilder {
	regretBldr := array.NewFixedSizeListBuilder(mem, int32(ncand), arrow.PrimitiveTypes.Float64)
	regretBldr.Reserve(maxTrials)

	considerationBlds := make([]*array.FixedSizeListBuilder, len(considerations))
	for i, c := range considerations {
		width := int32(ncand * considerationDim(c))
		bldr := array.NewFixedSizeListBuilder(mem, width, arrow.PrimitiveTypes.Float64)
		bldr.Reserve(maxTrials)
		considerationBlds[i] = bldr
	}

	covBldr := array.NewListBuilder(mem, arrow.ListOf(arrow.PrimitiveTypes.Float64))
	covBldr.Reserve(maxTrials)

	inSmithBldr := array.NewFixedSizeListBuilder(mem, int32(ncand), arrow.FixedWidthTypes.Boolean)
	inSmithBldr.Reserve(maxTrials)

	idealBldr := array.NewInt32Builder(mem)
	idealBldr.Reserve(maxTrials)
	numSmithBldr := array.NewInt32Builder(mem)
	numSmithBldr.Reserve(maxTrials)

	return &BatchBuilder{
		ncand:             ncand,
		considerations:    considerations,
		idealBldr:         idealBldr,
		regretBldr:        regretBldr,
		considerationBlds: considerationBlds,
		covBldr:           covBldr,
		numSmithBldr:      numSmithBldr,
		inSmithBldr:       inSmithBldr,
	}
}

// Append records one trial's derived tables. s must already have Election
// (or TakeFromPrimary) and Covariance run for the current trial.
func (b *BatchBuilder) Append(s *sim.Sim, cov [][]float64) {
	b.idealBldr.Append(0)

	b.regretBldr.Append(true)
	regretValues := b.regretBldr.ValueBuilder().(*array.Float64Builder)
	for _, cand := range s.CandByRegret {
		regretValues.Append(s.Regrets[cand])
	}

	for i, c := range b.considerations {
		bldr := b.considerationBlds[i]
		bldr.Append(true)
		values := bldr.ValueBuilder().(*array.Float64Builder)
		c.PushPositions(func(_ int, pos []float64) {
			for _, v := range pos {
				if math.IsNaN(v) {
					values.AppendNull()
				} else {
					values.Append(v)
				}
			}
		}, s.CandByRegret)
	}

	b.covBldr.Append(true)
	rowValues := b.covBldr.ValueBuilder().(*array.ListBuilder)
	for _, row := range cov {
		rowValues.Append(true)
		cellValues := rowValues.ValueBuilder().(*array.Float64Builder)
		for _, v := range row {
			cellValues.Append(v)
		}
	}

	b.numSmithBldr.Append(int32(s.SmithSetSize()))

	b.inSmithBldr.Append(true)
	inSmithValues := b.inSmithBldr.ValueBuilder().(*array.BooleanBuilder)
	for _, cand := range s.CandByRegret {
		inSmithValues.Append(s.InSmithSet[cand])
	}

	b.rows++
}

// Finish builds the non-method columns this batch recorded, in schema
// order. Each column's builder is consumed and must not be reused.
func (b *BatchBuilder) Finish() (cols []arrow.Array, rows int) {
	cols = append(cols, b.idealBldr.NewInt32Array())
	cols = append(cols, b.regretBldr.NewFixedSizeListArray())
	for _, bldr := range b.considerationBlds {
		cols = append(cols, bldr.NewFixedSizeListArray())
	}
	cols = append(cols, b.covBldr.NewListArray())
	cols = append(cols, b.numSmithBldr.NewInt32Array())
	cols = append(cols, b.inSmithBldr.NewFixedSizeListArray())
	return cols, b.rows
}
