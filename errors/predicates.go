package errors

import "errors"

// IsMissingFile checks if an error is a missing mandatory file.
func IsMissingFile(err error) bool {
	return err != nil && errors.Is(err, ErrMissingFile)
}

// IsMissingEnvironment checks if an error is a missing environment file.
func IsMissingEnvironment(err error) bool {
	return err != nil && errors.Is(err, ErrMissingEnvironmentFile)
}

// IsInvalidEnvDir checks if an error is an invalid environment-file directory.
func IsInvalidEnvDir(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidEnvFileDir)
}

// IsMetaConflict checks if an error is a meta-name conflict.
func IsMetaConflict(err error) bool {
	return err != nil && errors.Is(err, ErrMetaNameConflict)
}

// IsMissingProperty checks if an error is a missing required property.
func IsMissingProperty(err error) bool {
	return err != nil && errors.Is(err, ErrMissingRequiredProperty)
}

// IsResolutionError checks if an error aborts property resolution, as
// opposed to a validation failure scoped to one unit of work.
func IsResolutionError(err error) bool {
	return IsMissingFile(err) ||
		IsMissingEnvironment(err) ||
		IsInvalidEnvDir(err) ||
		IsMetaConflict(err) ||
		(err != nil && errors.Is(err, ErrUnreadableFile))
}
