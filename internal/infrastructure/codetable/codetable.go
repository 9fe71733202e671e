// Package codetable loads the static error-code table consumed by the
// response builder. Rows are code,httpStatus,summary triples kept in file
// order; a default table ships embedded in the binary and a config-supplied
// CSV file can override it.
package codetable

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"patient-registry-service/pkg/response"
)

//go:embed errorcodes.csv
var defaultCSV []byte

// Default parses the embedded table.
func Default() (response.CodeTable, error) {
	return parse(bytes.NewReader(defaultCSV))
}

// LoadFile parses an external table.
func LoadFile(path string) (response.CodeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error code table: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (response.CodeTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse error code table: %w", err)
	}

	table := make(response.CodeTable, 0, len(records))
	for _, record := range records {
		table = append(table, response.Row{
			Code:    record[0],
			Status:  record[1],
			Summary: record[2],
		})
	}
	return table, nil
}
