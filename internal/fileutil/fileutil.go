// Package fileutil holds file-writing helpers shared by the CLI and the MCP server.
package fileutil

import (
	"fmt"
	"os"
)

// OwnerReadWrite is the file permission mode for reduced documents,
// which may contain sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// WriteDocument writes a serialized document to path with OwnerReadWrite
// permissions, replacing any existing file.
func WriteDocument(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("fileutil: output path is empty")
	}
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("fileutil: failed to write %s: %w", path, err)
	}
	return nil
}
