// Package fileid derives a deterministic document ID from a file path so
// reingesting the same file updates its record instead of duplicating it.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "file:"

// FileDocID returns a stable document ID for the given path. The path is
// cleaned first, so variants that name the same file yield the same ID.
func FileDocID(path string) string {
	normalized := filepath.Clean(path)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:16])
}
