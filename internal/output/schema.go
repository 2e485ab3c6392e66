// Package output writes batches of trial rows to a columnar Parquet file
// using Apache Arrow as the in-memory representation, matching the schema
// of a run's configured candidates, considerations, and methods.
package output

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/freeeve/votesim/internal/tracker"
	"github.com/freeeve/votesim/pkg/votesim/consideration"
)

// Schema builds the per-run Arrow schema. ncand is the number of final
// candidates every trial reports over (after any primary narrows the
// field); considerations and methodNames name the per-run consideration
// and method columns, in configured order.
func Schema(ncand int, considerations []consideration.Consideration, methodNames []string) *arrow.Schema {
	fields := []arrow.Field{
		{Name: "ideal_cand", Type: arrow.PrimitiveTypes.Int32},
		{Name: "cand_regret", Type: arrow.FixedSizeListOf(int32(ncand), arrow.PrimitiveTypes.Float64)},
	}

	for _, c := range considerations {
		width := int32(ncand * considerationDim(c))
		fields = append(fields, arrow.Field{
			Name:     c.Name(),
			Type:     arrow.FixedSizeListOf(width, arrow.PrimitiveTypes.Float64),
			Nullable: true,
		})
	}

	fields = append(fields,
		arrow.Field{Name: "cov_matrix", Type: arrow.ListOf(arrow.ListOf(arrow.PrimitiveTypes.Float64))},
		arrow.Field{Name: "num_smith", Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: "in_smith", Type: arrow.FixedSizeListOf(int32(ncand), arrow.FixedWidthTypes.Boolean)},
	)

	methodFields := make([]arrow.Field, len(methodNames))
	for i, name := range methodNames {
		methodFields[i] = arrow.Field{Name: name, Type: tracker.DataType()}
	}
	fields = append(fields, arrow.Field{Name: "methods", Type: arrow.StructOf(methodFields...)})

	return arrow.NewSchema(fields, nil)
}

// considerationDim reports how many positions per candidate a
// consideration reports, treating a zero (or position-less) dimension as
// one column of NaN so every trial row has a fixed width regardless of
// which considerations are configured.
func considerationDim(c consideration.Consideration) int {
	if d := c.Dim(); d > 0 {
		return d
	}
	return 1
}
