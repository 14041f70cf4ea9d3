// Package filesystem stores content-hashed backup snapshots on disk.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// SnapshotExt is the file extension of every snapshot.
const SnapshotExt = ".json"

const stampLayout = "20060102T150405Z"

// Snapshot describes a saved snapshot file.
type Snapshot struct {
	Path    string
	Hash    string
	Created time.Time
}

// SaveSnapshot writes content into dir as <timestamp>-<hash prefix>.json and returns the file
// path and its full SHA-256 hash.
func SaveSnapshot(dir string, at time.Time, content []byte) (string, string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", "", err
	}

	hash := CalculateHash(content)
	name := at.UTC().Format(stampLayout) + "-" + hash[:12] + SnapshotExt
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", "", err
	}
	return path, hash, nil
}

// ReadFile reads a file from disk.
func ReadFile(path string) ([]byte, error) {
	//nolint:gosec // G304: path is chosen by the operator
	return os.ReadFile(path)
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyFile ensures the file exists and its SHA-256 hash matches expectedHash.
func VerifyFile(path, expectedHash string) (bool, error) {
	if !FileExists(path) {
		return false, nil
	}

	content, err := ReadFile(path)
	if err != nil {
		return false, err
	}
	return CalculateHash(content) == expectedHash, nil
}

// ListSnapshots returns the snapshots in dir, oldest first. A missing dir yields none.
func ListSnapshots(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SnapshotExt) {
			continue
		}
		stamp, _, ok := strings.Cut(strings.TrimSuffix(entry.Name(), SnapshotExt), "-")
		if !ok {
			continue
		}
		created, err := time.Parse(stampLayout, stamp)
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, Snapshot{Path: path, Hash: CalculateHash(content), Created: created})
	}

	slices.SortFunc(out, func(a, b Snapshot) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return out, nil
}

// PruneSnapshots deletes all but the newest keep snapshots in dir and returns how many were removed.
func PruneSnapshots(dir string, keep int) (int, error) {
	snaps, err := ListSnapshots(dir)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for len(snaps)-removed > keep {
		if err := DeleteFile(snaps[removed].Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// DeleteFile removes a file if it exists.
func DeleteFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(path)
}

// CalculateHash returns the hex SHA-256 of content.
func CalculateHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
