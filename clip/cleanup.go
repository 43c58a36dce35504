package clip

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"clipcut/youtube"
)

// CleanupFailure records a temp file that could not be removed.
type CleanupFailure struct {
	Name string
	Err  error
}

// CleanupReport lists what Clean did.
type CleanupReport struct {
	Removed []string
	Failed  []CleanupFailure
}

// Cleaner deletes transient download artifacts. Removal is best-effort.
type Cleaner struct {
	// Dir is the downloads directory to scan.
	Dir string
	// Marker is the substring identifying temp files. Defaults to youtube.TempPrefix.
	Marker string

	remove func(string) error
}

// NewCleaner creates a Cleaner for dir.
func NewCleaner(dir string) *Cleaner {
	return &Cleaner{Dir: dir, Marker: youtube.TempPrefix, remove: os.Remove}
}

// Clean removes every regular file in Dir whose name contains Marker.
// Individual failures are logged and reported, never returned; the error is
// only set when Dir cannot be read.
func (c *Cleaner) Clean() (*CleanupReport, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read downloads dir: %w", err)
	}

	marker := c.Marker
	if marker == "" {
		marker = youtube.TempPrefix
	}
	remove := c.remove
	if remove == nil {
		remove = os.Remove
	}

	report := &CleanupReport{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.Contains(name, marker) {
			continue
		}
		if err := remove(filepath.Join(c.Dir, name)); err != nil {
			log.Printf("clip: warning: could not remove temporary file %s: %v", name, err)
			report.Failed = append(report.Failed, CleanupFailure{Name: name, Err: err})
			continue
		}
		report.Removed = append(report.Removed, name)
	}
	return report, nil
}
