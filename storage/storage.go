// Package storage holds the blob side of the app: uploaded document files
// live in a Store keyed by {teamID}/{title}_{timestamp}.{ext}, and downloads
// go through HMAC-signed, time-limited URLs instead of direct file access.
package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Object describes one stored blob.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Store is the blob store for team document files. Implementations wrap
// failures in utils.StoreError and report missing objects via
// utils.ErrNotFound.
type Store interface {
	Put(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
	List() ([]Object, error)
}

// BuildKey constructs the storage key for an upload. Keys are scoped by team
// and disambiguated by a millisecond timestamp; two uploads of the same title
// in the same millisecond would still collide, which is accepted for
// human-paced usage.
func BuildKey(teamID, title, fileName string, now time.Time) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s_%d.%s", teamID, sanitizeSegment(title), now.UnixMilli(), ext)
}

// sanitizeSegment keeps user-supplied titles from breaking out of the key
// layout on disk.
func sanitizeSegment(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, "..", "-")
	if s == "" {
		return "untitled"
	}
	return s
}
