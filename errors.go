package propflow

import perrors "github.com/randalmurphal/propflow/errors"

// Resolution errors, re-exported so hosts can match them without importing
// the errors package.
var (
	ErrMissingFile             = perrors.ErrMissingFile
	ErrMissingEnvironmentFile  = perrors.ErrMissingEnvironmentFile
	ErrInvalidEnvFileDir       = perrors.ErrInvalidEnvFileDir
	ErrMetaNameConflict        = perrors.ErrMetaNameConflict
	ErrMissingRequiredProperty = perrors.ErrMissingRequiredProperty
	ErrUnreadableFile          = perrors.ErrUnreadableFile
)
