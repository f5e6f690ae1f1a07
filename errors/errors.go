package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution and validation errors.
var (
	// ErrMissingFile indicates a mandatory property file does not exist.
	ErrMissingFile = errors.New("missing required property file")

	// ErrMissingEnvironmentFile indicates no environment file exists anywhere
	// in the hierarchy for an explicitly requested environment.
	ErrMissingEnvironmentFile = errors.New("missing environment property file")

	// ErrInvalidEnvFileDir indicates the environment-file directory does not
	// exist, is not a directory, or cannot be read.
	ErrInvalidEnvFileDir = errors.New("invalid environment file directory")

	// ErrMetaNameConflict indicates a file redefined a meta-name property
	// with a value different from the established one.
	ErrMetaNameConflict = errors.New("conflicting meta-name property")

	// ErrMissingRequiredProperty indicates a required property is not set.
	ErrMissingRequiredProperty = errors.New("missing required property")

	// ErrUnreadableFile indicates a property file could not be read or parsed.
	ErrUnreadableFile = errors.New("unreadable property file")
)

// FileError reports a problem with a single property file.
type FileError struct {
	Path  string
	Class string
	Err   error
}

func (e *FileError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("%v: %s (%s)", e.Err, e.Path, e.Class)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// EnvironmentError reports that no environment file was found for EnvName.
type EnvironmentError struct {
	EnvName string
	Tried   []string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%v: no file found for environment %q (looked for %s)",
		ErrMissingEnvironmentFile, e.EnvName, strings.Join(e.Tried, ", "))
}

func (e *EnvironmentError) Unwrap() error {
	return ErrMissingEnvironmentFile
}

// EnvDirError reports an unusable environment-file directory.
type EnvDirError struct {
	Dir    string
	Reason string
}

func (e *EnvDirError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidEnvFileDir, e.Dir, e.Reason)
}

func (e *EnvDirError) Unwrap() error {
	return ErrInvalidEnvFileDir
}

// MetaConflictError reports a meta-name property redefined by a file.
type MetaConflictError struct {
	Key         string
	Established string
	Attempted   string
	Path        string
}

func (e *MetaConflictError) Error() string {
	return fmt.Sprintf("%v: %s sets %s=%q but it is already %q",
		ErrMetaNameConflict, e.Path, e.Key, e.Attempted, e.Established)
}

func (e *MetaConflictError) Unwrap() error {
	return ErrMetaNameConflict
}

// PropertyError reports a property required by a unit of work.
type PropertyError struct {
	Unit string
	Name string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%v: %q is required by %s", ErrMissingRequiredProperty, e.Name, e.Unit)
}

func (e *PropertyError) Unwrap() error {
	return ErrMissingRequiredProperty
}
