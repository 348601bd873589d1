package common

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// FileSetHash fingerprints a file list independent of its order,
// so runs over the same corpus can be grouped in history.
func FileSetHash(files []string) string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)
	return ContentHash([]byte(strings.Join(sorted, "\n")))
}

// ShortHash trims a hex hash for table output.
func ShortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}

// FormatSeconds renders a duration the way timing lines print it: "0.0123 sec".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.4f sec", d.Seconds())
}
