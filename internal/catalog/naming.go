package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var disallowed = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SanitizeName replaces every character outside [A-Za-z0-9.-] with '_'.
// Multi-byte runes become a single '_'.
func SanitizeName(name string) string {
	return disallowed.ReplaceAllString(name, "_")
}

// StoragePath addresses a blob as "<userID>/<epochMillis>-<sanitizedName>".
func StoragePath(userID string, at time.Time, sanitizedName string) string {
	return fmt.Sprintf("%s/%d-%s", userID, at.UnixMilli(), sanitizedName)
}

// OwnedBy reports whether storagePath lives under userID's prefix.
func OwnedBy(storagePath, userID string) bool {
	return userID != "" && strings.HasPrefix(storagePath, userID+"/")
}

// FormatSize renders bytes as megabytes with two decimals, e.g. "1.50 MB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// TypeFromMIME maps image/* to "image" and everything else to "file".
func TypeFromMIME(mime string) string {
	if strings.HasPrefix(strings.ToLower(mime), "image/") {
		return TypeImage
	}
	return TypeFile
}
