package propflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/randalmurphal/propflow/config"
	"github.com/randalmurphal/propflow/notify"
	"github.com/randalmurphal/propflow/project"
	"github.com/randalmurphal/propflow/sysprop"
	"github.com/randalmurphal/propflow/validate"
)

// FilterTokensKey is the extension name the filter token map is published
// under. A project that already carries it is not resolved again.
const FilterTokensKey = "filterTokens"

// Plugin resolves properties for projects and settings of one host.
type Plugin struct {
	fs        afero.Fs
	userHome  string
	overrides map[string]string
	environ   func() []string
	sysProps  sysprop.Store
	encoding  properties.Encoding
	logger    *slog.Logger
	notifier  notify.Notifier
	validator *validate.Registry
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithFs sets the filesystem property files are read from.
func WithFs(fsys afero.Fs) Option {
	return func(p *Plugin) {
		p.fs = fsys
	}
}

// WithUserHome sets the directory holding the user-level property files.
// Default is ~/.gradle.
func WithUserHome(dir string) Option {
	return func(p *Plugin) {
		p.userHome = dir
	}
}

// WithOverrides sets the command-line properties.
func WithOverrides(overrides map[string]string) Option {
	return func(p *Plugin) {
		p.overrides = overrides
	}
}

// WithEnviron sets the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(p *Plugin) {
		p.environ = environ
	}
}

// WithSystemProps sets the system property store.
func WithSystemProps(store sysprop.Store) Option {
	return func(p *Plugin) {
		p.sysProps = store
	}
}

// WithEncoding sets the encoding of property files. Default is ISO-8859-1.
func WithEncoding(enc properties.Encoding) Option {
	return func(p *Plugin) {
		p.encoding = enc
	}
}

// WithNotifier sets the notifier for resolution and validation events.
// Without one, the notifier carried by the call context is used.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Plugin) {
		p.notifier = n
	}
}

// New creates a plugin. It fails only when no user home is configured and
// the home directory cannot be determined.
func New(opts ...Option) (*Plugin, error) {
	p := &Plugin{
		fs:       afero.NewOsFs(),
		environ:  os.Environ,
		sysProps: sysprop.Default,
		encoding: properties.ISO_8859_1,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.userHome == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("locate user home: %w", err)
		}
		p.userHome = filepath.Join(home, ".gradle")
	}

	vopts := []validate.Option{validate.WithLogger(p.logger)}
	if p.notifier != nil {
		vopts = append(vopts, validate.WithNotifier(p.notifier))
	}
	p.validator = validate.NewRegistry(vopts...)
	return p, nil
}

// UserHome returns the directory of the user-level property files.
func (p *Plugin) UserHome() string {
	return p.userHome
}

// Validator returns the registry for deferred property checks.
func (p *Plugin) Validator() *validate.Registry {
	return p.validator
}

// target is the host object a resolution writes into.
type target struct {
	name   string
	props  project.Properties
	ext    map[string]any
	lookup config.LookupFunc
}

// ApplyProject resolves properties for node, writes them into node.Props
// and publishes the filter token map on node.Ext. It returns a nil Result
// when node was already resolved.
func (p *Plugin) ApplyProject(ctx context.Context, node *project.Node) (*config.Result, error) {
	if node.Props == nil {
		node.Props = project.NewPropertyMap(nil)
	}
	if node.Ext == nil {
		node.Ext = map[string]any{}
	}

	t := target{name: node.Name, props: node.Props, ext: node.Ext, lookup: node.Lookup}
	return p.apply(ctx, t, func(meta config.MetaNames) ([]config.Descriptor, error) {
		return config.BuildSourceList(p.fs, node, meta, p.userHome)
	})
}

// ApplySettings resolves properties for the workspace root before any
// project exists.
func (p *Plugin) ApplySettings(ctx context.Context, settings *project.Settings) (*config.Result, error) {
	if settings.Props == nil {
		settings.Props = project.NewPropertyMap(nil)
	}
	if settings.Ext == nil {
		settings.Ext = map[string]any{}
	}

	t := target{name: "settings", props: settings.Props, ext: settings.Ext, lookup: settings.Lookup}
	return p.apply(ctx, t, func(meta config.MetaNames) ([]config.Descriptor, error) {
		return config.BuildSettingsSourceList(p.fs, settings.Dir, meta, p.userHome)
	})
}

func (p *Plugin) apply(ctx context.Context, t target, build func(config.MetaNames) ([]config.Descriptor, error)) (*config.Result, error) {
	if _, done := t.ext[FilterTokensKey]; done {
		p.logger.Debug("properties already resolved", "target", t.name)
		return nil, nil
	}

	meta := config.ResolveMetaNames(p.metaLookup(t.lookup))
	descriptors, err := build(meta)
	if err != nil {
		return nil, err
	}

	res, err := config.NewResolver(p.resolverConfig(ctx)).Resolve(ctx, descriptors, meta)
	if err != nil {
		return nil, err
	}

	for _, v := range res.Namespace.Values() {
		t.props.Set(v.Key, v.Value)
	}
	t.ext[FilterTokensKey] = res.Tokens()

	p.logger.Debug("published filter tokens", "target", t.name, "run_id", res.RunID, "tokens", len(res.Tokens()))
	return res, nil
}

// metaLookup reads meta-name properties in layer precedence: overrides,
// system properties, environment variables, then the host.
func (p *Plugin) metaLookup(host config.LookupFunc) config.LookupFunc {
	env := sysprop.ParseEnviron(p.environ())
	return func(key string) (string, bool) {
		if v, ok := p.overrides[key]; ok {
			return v, true
		}
		if v, ok := p.sysProps.Lookup(config.DefaultSystemPropPrefix + key); ok {
			return v, true
		}
		if v, ok := env[config.DefaultEnvPrefix+key]; ok {
			return v, true
		}
		return host(key)
	}
}

func (p *Plugin) resolverConfig(ctx context.Context) config.ResolverConfig {
	n := p.notifier
	if n == nil {
		n = notify.NotifierFromContext(ctx)
	}
	return config.ResolverConfig{
		Fs:          p.fs,
		Environ:     p.environ,
		SystemProps: p.sysProps,
		Overrides:   p.overrides,
		Encoding:    p.encoding,
		Logger:      p.logger,
		Notifier:    n,
	}
}
