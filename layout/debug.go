package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON dumps laid-out lines as JSON for debugging or
// visualization of the wrap result.
func WriteDebugJSON(lines []Line, path string) error {
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
