package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindLatest walks root for files whose name contains token and whose
// extension is in exts, returning the most recently modified one.
// It returns "" when root does not exist or nothing matches. Entries below
// root that cannot be read are ignored.
func FindLatest(root, token string, exts []string) (string, error) {
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}

	var (
		best     string
		bestTime time.Time
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root {
				// Unreadable entries below root are skipped, not fatal.
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if !strings.Contains(name, token) {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if _, ok := allowed[ext]; !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if best == "" || info.ModTime().After(bestTime) {
			best = path
			bestTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return best, nil
}

// Find runs a strict pass with exts and, if that finds nothing, a second
// pass with fallback.
func Find(root, token string, exts, fallback []string) (string, error) {
	path, err := FindLatest(root, token, exts)
	if err != nil || path != "" {
		return path, err
	}
	return FindLatest(root, token, fallback)
}

// Read loads the artifact and returns its basename and contents
func Read(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}
