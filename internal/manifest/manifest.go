// Package manifest records the files of a generated site with content fingerprints.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/inful/mdfp"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// SiteManifest lists every output file. It holds no timestamps so identical
// sites produce identical manifests.
type SiteManifest struct {
	Files []FileEntry `json:"files"`
	// Fingerprint covers every path and file fingerprint.
	Fingerprint string `json:"fingerprint"`
}

// FileEntry is one output file.
type FileEntry struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Fingerprint string `json:"fingerprint"`
}

// Collect walks dir and fingerprints every regular file except the manifest itself.
func Collect(dir string) (*SiteManifest, error) {
	m := &SiteManifest{Files: []FileEntry{}}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == FileName {
			return nil
		}
		// #nosec G304 - path comes from walking the output directory
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		m.Files = append(m.Files, FileEntry{
			Path:        rel,
			Size:        int64(len(content)),
			Fingerprint: Fingerprint(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect manifest: %w", err)
	}
	slices.SortFunc(m.Files, func(a, b FileEntry) int { return strings.Compare(a.Path, b.Path) })
	m.Fingerprint = m.hash()
	return m, nil
}

// Fingerprint returns the content fingerprint of one file.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

func (m *SiteManifest) hash() string {
	h := sha256.New()
	for _, f := range m.Files {
		fmt.Fprintf(h, "%s\x00%s\n", f.Path, f.Fingerprint)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// ToJSON serializes the manifest to JSON.
func (m *SiteManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*SiteManifest, error) {
	var m SiteManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write stores the manifest as FileName inside dir.
func (m *SiteManifest) Write(dir string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
