package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultPrefix is used by GenerateFilename when no prefix is given
	DefaultPrefix = "generated"

	maxSlugLength   = 50
	timestampLayout = "2006-01-02_15-04-05"
)

var (
	unsafeSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)

	// now is swapped out in tests
	now = time.Now
)

// GenerateFilename derives a png filename of the form <prefix>_<slug>_<timestamp>.png
// from a prompt. The slug keeps only lower-case letters, digits and whitespace, turns
// whitespace runs into underscores and is cut to 50 characters.
func GenerateFilename(prompt, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	slug := strings.Map(foldSpace, strings.ToLower(prompt))
	slug = unsafeSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "_")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}

	timestamp := now().UTC().Format(timestampLayout)
	return fmt.Sprintf("%s_%s_%s.png", prefix, slug, timestamp)
}

// foldSpace maps every Unicode space to an ASCII one, which \s in RE2 would miss
func foldSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// EnsureDirectoryExists creates the parent directory of filePath, and any missing
// ancestors. It does nothing when filePath has no directory component.
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ResolveOutputPath picks where an image is written. An explicit path is used as
// given; otherwise the generated name is placed under outputDir (when set).
func ResolveOutputPath(explicit, generatedName, outputDir string) string {
	if explicit != "" {
		return explicit
	}
	if outputDir == "" {
		return generatedName
	}
	return filepath.Join(outputDir, generatedName)
}
