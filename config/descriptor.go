package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	perrors "github.com/randalmurphal/propflow/errors"
	"github.com/randalmurphal/propflow/project"
)

// File names read from every project and from the user home.
const (
	PropertiesFile = "gradle.properties"
	filePrefix     = "gradle-"
	fileSuffix     = ".properties"
)

// Descriptor describes one candidate property file.
type Descriptor struct {
	Path   string
	Class  Class
	Source Source

	// SystemPropertyEligible allows systemProp.* entries of this file to be
	// promoted to process-wide system properties.
	SystemPropertyEligible bool
}

// NamedFile returns the file name gradle-<name>.properties.
func NamedFile(name string) string {
	return filePrefix + name + fileSuffix
}

// BuildSourceList returns the property files for leaf, ordered from least to
// most specific: each project's general and environment files from the root
// down to leaf, then the user home files. Only the root project's files may
// promote system properties.
func BuildSourceList(fsys afero.Fs, leaf *project.Node, meta MetaNames, userHome string) ([]Descriptor, error) {
	var descriptors []Descriptor
	for node := leaf; node != nil; node = node.Parent {
		pair, err := locationFiles(fsys, node.Dir, meta, node.IsRoot())
		if err != nil {
			return nil, err
		}
		descriptors = append(pair, descriptors...)
	}
	return appendUserFiles(descriptors, meta, userHome), nil
}

// BuildSettingsSourceList returns the property files for a workspace-level
// root location. Both of its files may promote system properties.
func BuildSettingsSourceList(fsys afero.Fs, dir string, meta MetaNames, userHome string) ([]Descriptor, error) {
	descriptors, err := locationFiles(fsys, dir, meta, true)
	if err != nil {
		return nil, err
	}
	return appendUserFiles(descriptors, meta, userHome), nil
}

func locationFiles(fsys afero.Fs, dir string, meta MetaNames, eligible bool) ([]Descriptor, error) {
	envDir := dir
	if meta.EnvFileDir != "" {
		envDir = filepath.Join(dir, meta.EnvFileDir)
		if err := checkEnvDir(fsys, envDir); err != nil {
			return nil, err
		}
	}
	return []Descriptor{
		{
			Path:                   filepath.Join(dir, PropertiesFile),
			Class:                  Optional,
			Source:                 SourceProjectFile,
			SystemPropertyEligible: eligible,
		},
		{
			Path:                   filepath.Join(envDir, NamedFile(meta.EnvName)),
			Class:                  Environment,
			Source:                 SourceEnvironmentFile,
			SystemPropertyEligible: eligible,
		},
	}, nil
}

func appendUserFiles(descriptors []Descriptor, meta MetaNames, userHome string) []Descriptor {
	descriptors = append(descriptors, Descriptor{
		Path:                   filepath.Join(userHome, PropertiesFile),
		Class:                  Optional,
		Source:                 SourceUserFile,
		SystemPropertyEligible: true,
	})
	if meta.UserName != "" {
		descriptors = append(descriptors, Descriptor{
			Path:                   filepath.Join(userHome, NamedFile(meta.UserName)),
			Class:                  Mandatory,
			Source:                 SourceUserNamedFile,
			SystemPropertyEligible: true,
		})
	}
	return descriptors
}

func checkEnvDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &perrors.EnvDirError{Dir: dir, Reason: "does not exist"}
		}
		return &perrors.EnvDirError{Dir: dir, Reason: "cannot be accessed: " + err.Error()}
	}
	if !info.IsDir() {
		return &perrors.EnvDirError{Dir: dir, Reason: "is not a directory"}
	}

	f, err := fsys.Open(dir)
	if err != nil {
		return &perrors.EnvDirError{Dir: dir, Reason: "is not readable"}
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &perrors.EnvDirError{Dir: dir, Reason: "is not readable"}
	}
	return nil
}
