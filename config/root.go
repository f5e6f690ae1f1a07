package config

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// settingsFiles mark the root directory of a multi-project build.
var settingsFiles = []string{"settings.gradle", "settings.gradle.kts"}

// FindRootDir walks up from startDir to the nearest directory containing a
// settings file. It returns startDir itself when none is found.
func FindRootDir(fsys afero.Fs, startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range settingsFiles {
			if ok, _ := fileExists(fsys, filepath.Join(dir, name)); ok {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}

	return start, nil
}
