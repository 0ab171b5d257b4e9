package downloads

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// HashBytes is the hex sha256 recorded as a transfer checksum.
func HashBytes(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// ExtractFileName keeps only the last path element of a transmitted name,
// whichever separator the sender used.
func ExtractFileName(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// BuildCollisionName inserts _<suffix> before the extension.
func BuildCollisionName(name string, suffix string) string {
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		ext = name[i:]
	}
	return fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), suffix, ext)
}
