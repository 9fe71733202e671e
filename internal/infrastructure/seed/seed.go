// Package seed supplies the initial patient creation payloads consumed once
// at store initialization. Payloads stay raw key-value maps so bootstrap can
// run them through the same validation and create path as runtime requests.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed patients.json
var defaultJSON []byte

// Default returns the embedded seed list.
func Default() ([]map[string]any, error) {
	return parse(defaultJSON)
}

// LoadFile returns the seed list from an external JSON file.
func LoadFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed data: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]map[string]any, error) {
	var forms []map[string]any
	if err := json.Unmarshal(data, &forms); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return forms, nil
}
