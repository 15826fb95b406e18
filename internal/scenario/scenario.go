// Package scenario loads and saves forecast requests as JSON documents on
// disk. Scenario files are opaque request blobs: nothing here inspects or
// rewrites engine internals.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LucasAust/forecaster/internal/model"
)

// Load reads a scenario file into a Request. Defaults for horizon and method
// are left to the caller; Load only rejects files it cannot read or decode.
func Load(path string) (model.Request, error) {
	var req model.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading scenario: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return req, nil
}

// Save writes a Request to path as indented JSON, creating parent
// directories as needed.
func Save(path string, req model.Request) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating scenario dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
