package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadPipeline decodes a pipeline from JSON. Unknown fields are tolerated so
// editor payloads round-trip without the service tracking the editor schema.
func ReadPipeline(r io.Reader) (Pipeline, error) {
	var p Pipeline
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}

// ReadPipelineFile reads and decodes a pipeline from a JSON file.
func ReadPipelineFile(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPipeline(f)
}

// WriteSummary writes a summary as indented JSON.
func WriteSummary(s Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
