package output

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// Writer streams a run's batches to a single Parquet file, opened with the
// schema of the run's first batch. Only the collector goroutine touches a
// Writer; batch workers never see the output file.
type Writer struct {
	file *os.File
	fw   *pqarrow.FileWriter
}

// Open creates path and prepares a Parquet writer for schema. metadata is
// embedded as file-level key-value metadata (the canonical run
// configuration, by convention under the "votesim.config" key).
func Open(path string, schema *arrow.Schema, metadata map[string]string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	keys := make([]string, 0, len(metadata))
	values := make([]string, 0, len(metadata))
	for k, v := range metadata {
		keys = append(keys, k)
		values = append(values, v)
	}
	meta := arrow.NewMetadata(keys, values)
	schemaWithMeta := arrow.NewSchema(schema.Fields(), &meta)

	writerProps := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.DefaultWriterProps()

	fw, err := pqarrow.NewFileWriter(schemaWithMeta, f, writerProps, arrowProps)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}
	return &Writer{file: f, fw: fw}, nil
}

// WriteBatch appends one batch's rows as a row group.
func (w *Writer) WriteBatch(rec arrow.Record) error {
	if err := w.fw.WriteBuffered(rec); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}
	return nil
}

// Close finalizes the Parquet footer and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.fw.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
