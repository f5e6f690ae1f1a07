package errors

import (
	"errors"
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to change the wording shown to users.
type ErrorMessenger interface {
	// MissingFileMessage returns the message and suggestion for a missing mandatory file.
	MissingFileMessage(path string) (message, suggestion string)

	// MissingEnvironmentMessage returns the message and suggestion when no
	// environment file backs the requested environment.
	MissingEnvironmentMessage(envName string, tried []string) (message, suggestion string)

	// InvalidEnvDirMessage returns the message and suggestion for a bad environment directory.
	InvalidEnvDirMessage(dir, reason string) (message, suggestion string)

	// MetaConflictMessage returns the message and suggestion for a meta-name conflict.
	MetaConflictMessage(key, established, attempted, path string) (message, suggestion string)

	// MissingPropertyMessage returns the message and suggestion for a missing required property.
	MissingPropertyMessage(name, unit string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) MissingFileMessage(path string) (string, string) {
	return fmt.Sprintf("Required property file %s does not exist.", path),
		"Create the file, or unset the property that selects it."
}

func (m DefaultMessenger) MissingEnvironmentMessage(envName string, tried []string) (string, string) {
	return fmt.Sprintf("No property file was found for environment '%s'.", envName),
		fmt.Sprintf("Create one of:\n  - %s", strings.Join(tried, "\n  - "))
}

func (m DefaultMessenger) InvalidEnvDirMessage(dir, reason string) (string, string) {
	return fmt.Sprintf("Environment file directory %s %s.", dir, reason),
		"Check the environment file directory property."
}

func (m DefaultMessenger) MetaConflictMessage(key, established, attempted, path string) (string, string) {
	return fmt.Sprintf("%s tries to change '%s' from '%s' to '%s'.", path, key, established, attempted),
		"Set this property on the command line instead of in a property file."
}

func (m DefaultMessenger) MissingPropertyMessage(name, unit string) (string, string) {
	return fmt.Sprintf("You must set the '%s' property for %s.", name, unit),
		fmt.Sprintf("Define it in a gradle.properties file or pass -P%s=<value>.", name)
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// Explain wraps a resolution or validation error in a CLIError with a
// user-facing message. Errors outside the taxonomy are returned unchanged.
func Explain(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	messenger := getMessenger(opts)

	var (
		fileErr  *FileError
		envErr   *EnvironmentError
		dirErr   *EnvDirError
		metaErr  *MetaConflictError
		propErr  *PropertyError
		msg, sug string
	)
	switch {
	case errors.As(err, &metaErr):
		msg, sug = messenger.MetaConflictMessage(metaErr.Key, metaErr.Established, metaErr.Attempted, metaErr.Path)
	case errors.As(err, &envErr):
		msg, sug = messenger.MissingEnvironmentMessage(envErr.EnvName, envErr.Tried)
	case errors.As(err, &dirErr):
		msg, sug = messenger.InvalidEnvDirMessage(dirErr.Dir, dirErr.Reason)
	case errors.As(err, &propErr):
		msg, sug = messenger.MissingPropertyMessage(propErr.Name, propErr.Unit)
	case errors.As(err, &fileErr) && errors.Is(err, ErrMissingFile):
		msg, sug = messenger.MissingFileMessage(fileErr.Path)
	default:
		return err
	}

	return &CLIError{
		Err:        err,
		Message:    msg,
		Suggestion: sug,
	}
}
