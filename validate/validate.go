package validate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	perrors "github.com/randalmurphal/propflow/errors"
	"github.com/randalmurphal/propflow/notify"
)

// Kind classifies a property check.
type Kind int

const (
	// Required properties fail their unit when missing.
	Required Kind = iota
	// Recommended properties only warn when missing.
	Recommended
)

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case Recommended:
		return "recommended"
	default:
		return "unknown"
	}
}

// Check is one pending presence check.
type Check struct {
	Unit string
	Kind Kind
	Name string
	// Hint tells the user where a default comes from. Recommended only.
	Hint string
}

// LookupFunc reads a resolved property.
type LookupFunc func(name string) (string, bool)

// Registry records checks per unit of work and runs them on demand.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	pending  map[string][]Check
	observed map[string]map[string]string

	logger   *slog.Logger
	notifier notify.Notifier
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithNotifier sets the notifier for validation events. Without one, the
// notifier carried by the Validate context is used, if any.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		pending:  make(map[string][]Check),
		observed: make(map[string]map[string]string),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequireProperty declares that unit needs name to be set.
func (r *Registry) RequireProperty(unit, name string) {
	r.add(Check{Unit: unit, Kind: Required, Name: name})
}

// RequireProperties declares several required properties at once.
func (r *Registry) RequireProperties(unit string, names ...string) {
	for _, name := range names {
		r.RequireProperty(unit, name)
	}
}

// RecommendProperty declares that unit should have name set. hint may be
// empty.
func (r *Registry) RecommendProperty(unit, name, hint string) {
	r.add(Check{Unit: unit, Kind: Recommended, Name: name, Hint: hint})
}

// RecommendProperties declares several recommended properties sharing one
// hint.
func (r *Registry) RecommendProperties(unit string, names []string, hint string) {
	for _, name := range names {
		r.RecommendProperty(unit, name, hint)
	}
}

func (r *Registry) add(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[c.Unit] = append(r.pending[c.Unit], c)
}

// Pending returns the checks declared for unit that have not run yet.
func (r *Registry) Pending(unit string) []Check {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Check(nil), r.pending[unit]...)
}

// Validate runs the pending checks of every unit in willRun against lookup.
// Checks of other units stay pending. Every check of a unit runs even after
// one fails; the unit's error is its first missing required property.
// Failures of several units are combined into a *multierror.Error.
func (r *Registry) Validate(ctx context.Context, lookup LookupFunc, willRun []string) error {
	var result *multierror.Error
	seen := make(map[string]bool, len(willRun))

	for _, unit := range willRun {
		if seen[unit] {
			continue
		}
		seen[unit] = true

		if err := r.validateUnit(ctx, lookup, unit, r.drain(unit)); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (r *Registry) drain(unit string) []Check {
	r.mu.Lock()
	defer r.mu.Unlock()
	checks := r.pending[unit]
	delete(r.pending, unit)
	return checks
}

func (r *Registry) validateUnit(ctx context.Context, lookup LookupFunc, unit string, checks []Check) error {
	var first error
	for _, c := range checks {
		value, ok := lookup(c.Name)
		if ok {
			r.observe(unit, c.Name, value)
			continue
		}

		switch c.Kind {
		case Required:
			r.logger.Debug("required property missing", "unit", unit, "property", c.Name)
			r.notify(ctx, notify.Event{
				Type:     notify.EventPropertyMissing,
				Unit:     unit,
				Property: c.Name,
				Message:  "required property is not set",
				Severity: notify.SeverityError,
			})
			if first == nil {
				first = &perrors.PropertyError{Unit: unit, Name: c.Name}
			}
		case Recommended:
			attrs := []any{"unit", unit, "property", c.Name}
			if c.Hint != "" {
				attrs = append(attrs, "hint", c.Hint)
			}
			r.logger.Warn("recommended property is not set", attrs...)
			event := notify.Event{
				Type:     notify.EventPropertyRecommended,
				Unit:     unit,
				Property: c.Name,
				Message:  "recommended property is not set",
				Severity: notify.SeverityWarning,
			}
			if c.Hint != "" {
				event.Metadata = map[string]any{"hint": c.Hint}
			}
			r.notify(ctx, event)
		}
	}
	return first
}

func (r *Registry) observe(unit, name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observed[unit] == nil {
		r.observed[unit] = make(map[string]string)
	}
	r.observed[unit][name] = value
}

// Observed returns the checked properties that were present for unit, with
// the values they had. Absent properties are not recorded.
func (r *Registry) Observed(unit string) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.observed[unit]))
	for k, v := range r.observed[unit] {
		out[k] = v
	}
	return out
}

func (r *Registry) notify(ctx context.Context, event notify.Event) {
	n := r.notifier
	if n == nil {
		n = notify.NotifierFromContext(ctx)
	}
	if n == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := n.Notify(ctx, event); err != nil {
		r.logger.Debug("notification failed", "error", err, "event_type", event.Type)
	}
}
