package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Store owns the data directory holding one UTF-8 text file per entity
// type, one record per line. It is the only code that touches the disk.
type Store struct {
	dir string
	log zerolog.Logger
}

// Open ensures the data directory exists and returns a store rooted there.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory %s", dir)
	}
	log.Info().Str("dir", dir).Msg("Datastore opened")
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadLines returns every non-empty line of the named file. A missing file
// is first-run bootstrap, not an error: it is created empty and no lines
// are returned. Permission and disk errors are surfaced to the caller.
func (s *Store) ReadLines(name string) ([]string, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", path)
		}
		if err := os.Chmod(path, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to set permissions on %s", path)
		}
		s.log.Info().Str("file", name).Msg("Created empty record file")
		return nil, nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// WriteLines replaces the named file's contents with the given lines. The
// write goes to a temp file in the same directory which is synced and then
// renamed over the target, so a crash mid-write leaves the previous
// contents intact rather than a truncated file.
func (s *Store) WriteLines(name string, lines []string) error {
	path := s.path(name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp makes the file 0600; record files are 0644.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to set permissions on temp file for %s", path)
	}

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write temp file for %s", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to sync temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close temp file for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
