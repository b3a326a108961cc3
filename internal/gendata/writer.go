package gendata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

const outputFileMode = 0o644

// WriteFile serializes the generated directory to path as indented
// JSON, creating parent directories as needed.
func WriteFile(path string, employees []model.Employee) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	buf, err := json.MarshalIndent(employees, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal directory: %w", err)
	}

	if err := os.WriteFile(path, buf, outputFileMode); err != nil {
		return fmt.Errorf("failed to write directory export: %w", err)
	}
	return nil
}
