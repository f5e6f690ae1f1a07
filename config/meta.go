package config

// Keys naming the meta-name properties.
const (
	EnvNamePropertyKey    = "propertiesPluginEnvironmentNameProperty"
	UserNamePropertyKey   = "propertiesPluginGradleUserNameProperty"
	EnvFileDirPropertyKey = "propertiesPluginEnvironmentFileDirProperty"
)

// Defaults for the meta-name properties.
const (
	DefaultEnvNameProperty    = "environmentName"
	DefaultUserNameProperty   = "gradleUserName"
	DefaultEnvFileDirProperty = "environmentFileDir"

	// DefaultEnvName is the environment used when none is requested.
	DefaultEnvName = "local"
)

// LookupFunc reads a property that is already set on the host.
type LookupFunc func(key string) (string, bool)

// MetaNames holds the property names that select the environment, the user
// and the environment-file directory, and the values they currently hold.
type MetaNames struct {
	EnvNameProperty    string
	UserNameProperty   string
	EnvFileDirProperty string

	// EnvName is the effective environment name, DefaultEnvName when unset.
	EnvName string
	// UserName is empty when no user file should be loaded.
	UserName string
	// EnvFileDir is empty when environment files live in the project directory.
	EnvFileDir string
}

// ResolveMetaNames reads the meta-name properties from the host before any
// property file is loaded.
func ResolveMetaNames(lookup LookupFunc) MetaNames {
	get := func(key, fallback string) string {
		if lookup != nil {
			if v, ok := lookup(key); ok && v != "" {
				return v
			}
		}
		return fallback
	}

	m := MetaNames{
		EnvNameProperty:    get(EnvNamePropertyKey, DefaultEnvNameProperty),
		UserNameProperty:   get(UserNamePropertyKey, DefaultUserNameProperty),
		EnvFileDirProperty: get(EnvFileDirPropertyKey, DefaultEnvFileDirProperty),
	}
	m.EnvName = get(m.EnvNameProperty, DefaultEnvName)
	m.UserName = get(m.UserNameProperty, "")
	m.EnvFileDir = get(m.EnvFileDirProperty, "")
	return m
}

// IsDefaultEnv reports whether the effective environment is DefaultEnvName.
func (m MetaNames) IsDefaultEnv() bool {
	return m.EnvName == DefaultEnvName
}

// Protected returns the keys a property file may not redefine.
func (m MetaNames) Protected() map[string]bool {
	return map[string]bool{
		EnvNamePropertyKey:    true,
		UserNamePropertyKey:   true,
		EnvFileDirPropertyKey: true,
		m.EnvNameProperty:     true,
		m.UserNameProperty:    true,
		m.EnvFileDirProperty:  true,
	}
}

// Established returns the protected keys that already have a value when the
// run starts. Unset user and directory properties are absent, so the first
// file to define them establishes them.
func (m MetaNames) Established() map[string]string {
	est := map[string]string{
		EnvNamePropertyKey:    m.EnvNameProperty,
		UserNamePropertyKey:   m.UserNameProperty,
		EnvFileDirPropertyKey: m.EnvFileDirProperty,
		m.EnvNameProperty:     m.EnvName,
	}
	if m.UserName != "" {
		est[m.UserNameProperty] = m.UserName
	}
	if m.EnvFileDir != "" {
		est[m.EnvFileDirProperty] = m.EnvFileDir
	}
	return est
}
