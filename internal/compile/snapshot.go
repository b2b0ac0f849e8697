package compile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// ErrSnapshot indicates the build directory could not be read or hashed.
var ErrSnapshot = errors.New("snapshot failed")

// Snapshot maps a source's base name to its BLAKE3 hex digest.
type Snapshot map[string]string

// TakeSnapshot digests every regular file in dir whose name ends in ext.
// A missing directory yields an empty snapshot.
func TakeSnapshot(dir, ext string) (Snapshot, error) {
	snap := make(Snapshot)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		sum, err := Digest(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		snap[e.Name()] = sum
	}
	return snap, nil
}

// Digest returns the BLAKE3-256 hex digest of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSnapshot, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Changed reports whether name was in the snapshot with a different digest.
func (s Snapshot) Changed(name, digest string) bool {
	prev, ok := s[name]
	return ok && prev != digest
}
