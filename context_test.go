package propflow

import (
	"context"
	"testing"
)

func TestPluginContext(t *testing.T) {
	ctx := context.Background()
	if PluginFromContext(ctx) != nil {
		t.Error("empty context should carry no plugin")
	}

	p, err := New(WithUserHome("/home/dev/.gradle"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx = WithPlugin(ctx, p)
	if PluginFromContext(ctx) != p {
		t.Error("PluginFromContext() did not return the injected plugin")
	}
	if MustPluginFromContext(ctx) != p {
		t.Error("MustPluginFromContext() did not return the injected plugin")
	}
}

func TestMustPluginFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustPluginFromContext() should panic without a plugin")
		}
	}()
	MustPluginFromContext(context.Background())
}
