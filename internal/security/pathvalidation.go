// Package security guards where rendered charts may be written.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinDirectory reports an error if filePath, once cleaned and
// with symlinks resolved, lies outside safeDir. Paths that do not exist yet are
// checked through their nearest existing parent, so a symlinked parent cannot
// redirect a new file elsewhere.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}

	canonicalSafeDir, err := filepath.EvalSymlinks(absSafeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory symlinks: %w", err)
	}

	relPath, err := filepath.Rel(canonicalSafeDir, canonicalize(absPath))
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}

	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, safeDir)
	}

	return nil
}

func canonicalize(absPath string) string {
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved
	}
	for dir := filepath.Dir(absPath); ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			rel, _ := filepath.Rel(dir, absPath)
			return filepath.Join(resolved, rel)
		}
		if dir == filepath.Dir(dir) {
			return absPath
		}
	}
}

// SanitizeFilename makes a safe filename from an arbitrary string. Characters
// other than ASCII letters, digits, dot, underscore or dash become a single
// underscore; the result is capped at 128 bytes and never empty.
func SanitizeFilename(s string) string {
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}

// ChartFilename is the default output name for a session chart, e.g.
// "race_pace_Monte_Carlo.html".
func ChartFilename(circuit, ext string) string {
	return "race_pace_" + SanitizeFilename(circuit) + "." + strings.TrimPrefix(ext, ".")
}
