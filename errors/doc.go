// Package errors defines the failures a property resolution can surface.
//
// Sentinel errors:
//   - ErrMissingFile: a mandatory property file does not exist
//   - ErrMissingEnvironmentFile: no environment file backs an explicitly named environment
//   - ErrInvalidEnvFileDir: the configured environment-file directory is unusable
//   - ErrMetaNameConflict: a file redefines a meta-name property
//   - ErrMissingRequiredProperty: a unit of work needs a property that is not set
//   - ErrUnreadableFile: a property file exists but cannot be read or parsed
//
// Each sentinel has a typed counterpart carrying context (FileError,
// EnvironmentError, EnvDirError, MetaConflictError, PropertyError) that
// unwraps to it, so callers can use either errors.Is or errors.As.
//
// Example usage:
//
//	if _, err := plugin.ApplyProject(ctx, node); err != nil {
//	    if errors.IsMetaConflict(err) {
//	        // a file tried to change the environment name
//	    }
//	    fmt.Fprintln(os.Stderr, errors.Explain(err))
//	}
package errors
