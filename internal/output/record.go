package output

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// NewRecord assembles one batch's finished non-method columns and the
// method tracker columns (in the methodNames order schema was built with) into a single
// Arrow record matching schema.
func NewRecord(schema *arrow.Schema, baseCols []arrow.Array, rows int, methodNames []string, methodCols []arrow.Array) (arrow.Record, error) {
	if len(methodNames) != len(methodCols) {
		return nil, fmt.Errorf("output: %d method names but %d method columns", len(methodNames), len(methodCols))
	}

	methodFields := make([]arrow.Field, len(methodNames))
	for i, name := range methodNames {
		methodFields[i] = arrow.Field{Name: name, Type: methodCols[i].DataType()}
	}
	methodsStruct := array.NewStructArray(methodCols, methodFields)

	cols := make([]arrow.Array, 0, len(baseCols)+1)
	cols = append(cols, baseCols...)
	cols = append(cols, methodsStruct)

	return array.NewRecord(schema, cols, int64(rows)), nil
}
