package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/magiconair/properties"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/afero"

	perrors "github.com/randalmurphal/propflow/errors"
	"github.com/randalmurphal/propflow/notify"
	"github.com/randalmurphal/propflow/sysprop"
)

// Default prefixes for the non-file layers.
const (
	DefaultEnvPrefix        = "ORG_GRADLE_PROJECT_"
	DefaultSystemPropPrefix = "org.gradle.project."
	DefaultSystemPropMarker = "systemProp."
)

// ResolverConfig configures the layer merger. The zero value is usable.
type ResolverConfig struct {
	// EnvPrefix selects environment variables; the property name is the
	// variable name without it. Defaults to DefaultEnvPrefix.
	EnvPrefix string

	// SystemPropPrefix selects system properties. Defaults to DefaultSystemPropPrefix.
	SystemPropPrefix string

	// SystemPropMarker marks file entries promoted to system properties.
	// Defaults to DefaultSystemPropMarker.
	SystemPropMarker string

	// Fs is the filesystem property files are read from. Defaults to the OS.
	Fs afero.Fs

	// Environ returns "KEY=value" pairs. Defaults to os.Environ.
	Environ func() []string

	// SystemProps is read for the system property layer and written by
	// promotion. Defaults to sysprop.Default.
	SystemProps sysprop.Store

	// Overrides are command-line properties; they always win.
	Overrides map[string]string

	// Encoding of property files. Defaults to ISO-8859-1.
	Encoding properties.Encoding

	// Logger receives debug and info records. Defaults to slog.Default().
	Logger *slog.Logger

	// Notifier receives resolution events. Defaults to a no-op.
	Notifier notify.Notifier
}

func (c ResolverConfig) withDefaults() ResolverConfig {
	if c.EnvPrefix == "" {
		c.EnvPrefix = DefaultEnvPrefix
	}
	if c.SystemPropPrefix == "" {
		c.SystemPropPrefix = DefaultSystemPropPrefix
	}
	if c.SystemPropMarker == "" {
		c.SystemPropMarker = DefaultSystemPropMarker
	}
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	if c.Environ == nil {
		c.Environ = os.Environ
	}
	if c.SystemProps == nil {
		c.SystemProps = sysprop.Default
	}
	if c.Encoding == 0 {
		c.Encoding = properties.ISO_8859_1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Notifier == nil {
		c.Notifier = notify.NopNotifier{}
	}
	return c
}

// Resolver merges property layers into a Namespace.
type Resolver struct {
	config ResolverConfig
}

// NewResolver creates a new resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{config: cfg.withDefaults()}
}

// Fs returns the filesystem the resolver reads from.
func (r *Resolver) Fs() afero.Fs {
	return r.config.Fs
}

// Result is the outcome of one resolution run.
type Result struct {
	RunID     string
	EnvName   string
	Namespace *Namespace

	// Descriptors is every file considered, in merge order.
	Descriptors []Descriptor
	// Loaded and Missing partition Descriptors by whether the file existed.
	Loaded  []Descriptor
	Missing []Descriptor

	// Promoted holds system properties set from systemProp.* entries.
	Promoted map[string]string
}

// Tokens returns the filter token map of the run.
func (r *Result) Tokens() TokenMap {
	return r.Namespace.Tokens()
}

// run is the mutable state of a single Resolve call.
type run struct {
	*Resolver
	id          string
	meta        MetaNames
	ns          *Namespace
	protected   map[string]bool
	established map[string]string
	result      *Result
}

// Resolve merges descriptors, then environment variables, system properties
// and overrides, in that order. It stops at the first fatal condition.
func (r *Resolver) Resolve(ctx context.Context, descriptors []Descriptor, meta MetaNames) (*Result, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	meta = mergeMetaDefaults(meta)

	st := &run{
		Resolver:    r,
		id:          id,
		meta:        meta,
		ns:          NewNamespace(),
		protected:   meta.Protected(),
		established: meta.Established(),
		result: &Result{
			RunID:       id,
			EnvName:     meta.EnvName,
			Descriptors: descriptors,
			Promoted:    map[string]string{},
		},
	}
	st.result.Namespace = st.ns

	r.notify(ctx, notify.Event{
		Type:     notify.EventResolutionStarted,
		RunID:    id,
		Message:  "resolving properties",
		Severity: notify.SeverityInfo,
		Metadata: map[string]any{"env": meta.EnvName, "files": len(descriptors)},
	})

	if err := st.merge(ctx); err != nil {
		r.notify(ctx, notify.Event{
			Type:     notify.EventResolutionFailed,
			RunID:    id,
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return nil, err
	}

	r.config.Logger.Info("resolved properties",
		"run_id", id,
		"env", meta.EnvName,
		"keys", st.ns.Len(),
		"files_loaded", len(st.result.Loaded),
	)
	r.notify(ctx, notify.Event{
		Type:     notify.EventResolutionCompleted,
		RunID:    id,
		Message:  "resolved properties",
		Severity: notify.SeverityInfo,
		Metadata: map[string]any{"keys": st.ns.Len()},
	})
	return st.result, nil
}

func (st *run) merge(ctx context.Context) error {
	envFound := false
	var envTried []string

	for _, d := range st.result.Descriptors {
		exists, err := fileExists(st.config.Fs, d.Path)
		if err != nil {
			return &perrors.FileError{Path: d.Path, Class: d.Class.String(), Err: fmt.Errorf("%w: %v", perrors.ErrUnreadableFile, err)}
		}
		if d.Class == Environment {
			envTried = append(envTried, d.Path)
		}
		if !exists {
			if d.Class == Mandatory {
				return &perrors.FileError{Path: d.Path, Class: d.Class.String(), Err: perrors.ErrMissingFile}
			}
			st.config.Logger.Debug("property file not found", "path", d.Path, "class", d.Class)
			st.result.Missing = append(st.result.Missing, d)
			continue
		}

		if err := st.applyFile(ctx, d); err != nil {
			return err
		}
		if d.Class == Environment {
			envFound = true
		}
		st.result.Loaded = append(st.result.Loaded, d)
	}

	if !envFound && !st.meta.IsDefaultEnv() {
		return &perrors.EnvironmentError{EnvName: st.meta.EnvName, Tried: envTried}
	}

	st.applyPrefixed(sysprop.ParseEnviron(st.config.Environ()), st.config.EnvPrefix, SourceEnv)
	st.applyPrefixed(st.config.SystemProps.All(), st.config.SystemPropPrefix, SourceSystemProperty)

	keys := make([]string, 0, len(st.config.Overrides))
	for k := range st.config.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		st.ns.Set(k, st.config.Overrides[k], Origin{Source: SourceCommandLine})
	}

	if !st.ns.Has(st.meta.EnvNameProperty) {
		st.ns.Set(st.meta.EnvNameProperty, st.meta.EnvName, Origin{Source: SourceDefault})
	}
	return nil
}

func (st *run) applyFile(ctx context.Context, d Descriptor) error {
	entries, err := LoadFile(st.config.Fs, d.Path, st.config.Encoding)
	if err != nil {
		return err
	}

	marker := st.config.SystemPropMarker
	for _, e := range entries {
		if err := st.checkMeta(d.Path, e); err != nil {
			return err
		}
		st.ns.Set(e.Key, e.Value, Origin{Source: d.Source, Path: d.Path})

		if d.SystemPropertyEligible && len(e.Key) > len(marker) && strings.HasPrefix(e.Key, marker) {
			name := e.Key[len(marker):]
			st.config.SystemProps.Set(name, e.Value)
			st.result.Promoted[name] = e.Value
		}
	}

	st.config.Logger.Debug("loaded property file",
		"path", d.Path,
		"class", d.Class,
		"entries", len(entries),
	)
	st.notify(ctx, notify.Event{
		Type:     notify.EventFileLoaded,
		RunID:    st.id,
		Path:     d.Path,
		Message:  "loaded property file",
		Severity: notify.SeverityInfo,
		Metadata: map[string]any{"class": d.Class.String(), "entries": len(entries)},
	})
	return nil
}

// checkMeta rejects a file entry that changes an established meta-name
// property. The first file to set an unestablished one establishes it.
func (st *run) checkMeta(path string, e Entry) error {
	if !st.protected[e.Key] {
		return nil
	}
	if current, ok := st.established[e.Key]; ok {
		if current != e.Value {
			return &perrors.MetaConflictError{
				Key:         e.Key,
				Established: current,
				Attempted:   e.Value,
				Path:        path,
			}
		}
		return nil
	}
	st.established[e.Key] = e.Value
	return nil
}

func (st *run) applyPrefixed(values map[string]string, prefix string, src Source) {
	for _, e := range sysprop.WithPrefix(values, prefix) {
		st.ns.Set(e.Name, e.Value, Origin{Source: src, Path: e.Key})
	}
}

func (r *Resolver) notify(ctx context.Context, event notify.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := r.config.Notifier.Notify(ctx, event); err != nil {
		r.config.Logger.Debug("notification failed", "error", err, "event_type", event.Type)
	}
}

// mergeMetaDefaults fills the unset fields of a hand-built MetaNames.
func mergeMetaDefaults(m MetaNames) MetaNames {
	if m.EnvNameProperty == "" {
		m.EnvNameProperty = DefaultEnvNameProperty
	}
	if m.UserNameProperty == "" {
		m.UserNameProperty = DefaultUserNameProperty
	}
	if m.EnvFileDirProperty == "" {
		m.EnvFileDirProperty = DefaultEnvFileDirProperty
	}
	if m.EnvName == "" {
		m.EnvName = DefaultEnvName
	}
	return m
}
