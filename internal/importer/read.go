package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON array of records.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return records, nil
}

// Read decodes records from the file at path, or from stdin when path is empty.
func Read(path string, stdin io.Reader) ([]Record, error) {
	if path == "" {
		return Decode(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
