package propflow

import "context"

// =============================================================================
// Context Injection Helpers
// =============================================================================

type serviceContextKey string

const pluginServiceKey serviceContextKey = "propflow.plugin"

// WithPlugin adds a Plugin to the context.
func WithPlugin(ctx context.Context, p *Plugin) context.Context {
	return context.WithValue(ctx, pluginServiceKey, p)
}

// PluginFromContext extracts the Plugin from context.
func PluginFromContext(ctx context.Context) *Plugin {
	if p, ok := ctx.Value(pluginServiceKey).(*Plugin); ok {
		return p
	}
	return nil
}

// MustPluginFromContext extracts the Plugin or panics.
func MustPluginFromContext(ctx context.Context) *Plugin {
	p := PluginFromContext(ctx)
	if p == nil {
		panic("propflow: Plugin not found in context")
	}
	return p
}
