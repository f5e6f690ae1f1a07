package config

// Source indicates which layer produced a property value.
type Source string

// Property source constants.
const (
	// SourceDefault indicates a built-in default, such as the environment name.
	SourceDefault Source = "default"

	// SourceProjectFile indicates a project's gradle.properties.
	SourceProjectFile Source = "project-file"

	// SourceEnvironmentFile indicates a project's gradle-<env>.properties.
	SourceEnvironmentFile Source = "environment-file"

	// SourceUserFile indicates gradle.properties in the user home.
	SourceUserFile Source = "user-file"

	// SourceUserNamedFile indicates gradle-<user>.properties in the user home.
	SourceUserNamedFile Source = "user-named-file"

	// SourceEnv indicates an ORG_GRADLE_PROJECT_ environment variable.
	SourceEnv Source = "env"

	// SourceSystemProperty indicates an org.gradle.project. system property.
	SourceSystemProperty Source = "system-property"

	// SourceCommandLine indicates a command-line override.
	SourceCommandLine Source = "command-line"
)

// Class governs what happens when a property file does not exist.
type Class int

const (
	// Optional files are skipped silently when missing.
	Optional Class = iota
	// Mandatory files abort the resolution when missing.
	Mandatory
	// Environment files are skipped when missing, but at least one must
	// exist across the hierarchy unless the environment is the default.
	Environment
)

func (c Class) String() string {
	switch c {
	case Optional:
		return "optional"
	case Mandatory:
		return "mandatory"
	case Environment:
		return "environment"
	default:
		return "unknown"
	}
}
