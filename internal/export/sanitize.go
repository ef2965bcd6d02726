package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxFilenameLength caps sanitized names well under common filesystem
// limits, leaving room for collision suffixes.
const maxFilenameLength = 200

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename makes a title safe to use as a file or directory name:
// illegal characters become underscores, leading and trailing dots and
// spaces are stripped, and the result is truncated. An empty result falls
// back to "unnamed".
func SanitizeFilename(name string) string {
	name = illegalFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if runes := []rune(name); len(runes) > maxFilenameLength {
		name = string(runes[:maxFilenameLength])
	}
	if name == "" {
		return "unnamed"
	}
	return name
}

// reserveUniqueDir returns an unused directory path under parent for name,
// probing the filesystem and appending _2, _3, ... until free. The output
// root is cleared at the start of every run, so probing is deterministic
// per run.
func reserveUniqueDir(parent, name string) string {
	path := filepath.Join(parent, name)
	if !pathExists(path) {
		return path
	}
	for n := 2; ; n++ {
		candidate := filepath.Join(parent, fmt.Sprintf("%s_%d", name, n))
		if !pathExists(candidate) {
			return candidate
		}
	}
}

// reserveUniqueFile returns an unused file name inside dir, appending _1,
// _2, ... before the extension until free.
func reserveUniqueFile(dir, name string) string {
	if !pathExists(filepath.Join(dir, name)) {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !pathExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
