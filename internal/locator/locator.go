package locator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidUTF8 is returned when the selected log contains malformed UTF-8.
var ErrInvalidUTF8 = errors.New("log file is not valid UTF-8")

// LogFile is a located log together with its full content.
type LogFile struct {
	Path     string
	Created  time.Time
	Modified time.Time
	Content  string
}

// candidate is a matched file before its content is read.
type candidate struct {
	path     string
	created  time.Time
	modified time.Time
}

// Latest finds the newest log in dir matching pattern and reads it.
// It returns nil, nil when nothing matches.
func Latest(dir, pattern string) (*LogFile, error) {
	cands, err := scan(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, nil
	}

	newest := cands[0]
	content, err := readUTF8(newest.path)
	if err != nil {
		return nil, err
	}

	return &LogFile{
		Path:     newest.path,
		Created:  newest.created,
		Modified: newest.modified,
		Content:  content,
	}, nil
}

// scan returns every regular file in dir matching pattern, newest first.
// Files with the same creation time are ordered by name, greatest first.
func scan(dir, pattern string) ([]candidate, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log directory %s is not a directory", dir)
	}

	// Globbing against an fs.FS keeps meta characters in dir literal.
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", pattern, dir, err)
	}

	cands := make([]candidate, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		cands = append(cands, candidate{
			path:     path,
			created:  createdAt(fi),
			modified: fi.ModTime(),
		})
	}

	newestFirst(cands)
	return cands, nil
}

// newestFirst orders by creation time descending, then by path descending.
func newestFirst(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].created.Equal(cands[j].created) {
			return cands[i].created.After(cands[j].created)
		}
		return cands[i].path > cands[j].path
	})
}

// readUTF8 reads the whole file and rejects malformed UTF-8.
func readUTF8(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(raw), nil
}

// modTime is the fallback creation time on platforms without one.
func modTime(fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
