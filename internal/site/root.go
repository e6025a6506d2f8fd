package site

import (
	"path/filepath"
	"strings"
)

// RootPrefix returns the relative path from outputPath back to the site root.
//
// A non-empty explicitRoot is returned unchanged. Otherwise depth is the number
// of path components of outputPath below siteRoot: depths up to two yield ""
// and every further level adds one "../".
func RootPrefix(outputPath, siteRoot, explicitRoot string) string {
	if explicitRoot != "" {
		return explicitRoot
	}
	rel, err := filepath.Rel(siteRoot, outputPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = outputPath
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	depth := len(strings.Split(strings.Trim(rel, "/"), "/"))
	if depth <= 2 {
		return ""
	}
	return strings.Repeat("../", depth-2)
}
