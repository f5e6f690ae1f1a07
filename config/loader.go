package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"

	perrors "github.com/randalmurphal/propflow/errors"
)

// Entry is one key=value line of a property file.
type Entry struct {
	Key   string
	Value string
}

// fileExists reports whether path exists and is a regular file.
func fileExists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// LoadFile parses a property file. Entries are returned in file order; a key
// repeated in the same file keeps its last value. ${...} references are
// left as written.
func LoadFile(fsys afero.Fs, path string, enc properties.Encoding) ([]Entry, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &perrors.FileError{Path: path, Err: fmt.Errorf("%w: %v", perrors.ErrUnreadableFile, err)}
	}

	loader := &properties.Loader{Encoding: enc, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, &perrors.FileError{Path: path, Err: fmt.Errorf("%w: %v", perrors.ErrUnreadableFile, err)}
	}

	keys := p.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries, nil
}
