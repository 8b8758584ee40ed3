package plugins

import (
	"testing"

	"github.com/agraph-dev/agraph/pkg/query"
)

func countingPlugin(name string) *FuncPlugin {
	return &FuncPlugin{
		PluginName:    name,
		PluginVersion: "1.0.0",
		Functions: []*query.Function{
			{
				Name: name,
				Handler: func(ctx *query.Context, args []query.Value) (query.Value, error) {
					return query.StringValue(name), nil
				},
			},
		},
	}
}

func TestLoaderInstallsBuiltins(t *testing.T) {
	registry := query.NewRegistry()
	if err := NewLoader(nil).Install(registry); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	for _, name := range []string{"vertices", "gives_access_to", "access_base", "access_base_sets", "akv"} {
		if _, err := registry.Lookup(name); err != nil {
			t.Errorf("Built-in %q missing: %v", name, err)
		}
	}
}

func TestLoaderInstallsPlugins(t *testing.T) {
	loader := NewLoader(nil)
	if err := loader.Add(countingPlugin("coverage")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	registry := query.NewRegistry()
	if err := loader.Install(registry); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if _, err := registry.Lookup("coverage"); err != nil {
		t.Errorf("Plugin function missing: %v", err)
	}
}

func TestLoaderRejectsDuplicateNames(t *testing.T) {
	loader := NewLoader(nil)
	if err := loader.Add(countingPlugin("twice")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := loader.Add(countingPlugin("twice")); err == nil {
		t.Error("Expected an error for a duplicate plugin name")
	}
}

func TestPluginsOverrideBuiltins(t *testing.T) {
	loader := NewLoader(nil)
	if err := loader.Add(countingPlugin("vertices")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	registry := query.NewRegistry()
	if err := loader.Install(registry); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	fn, err := registry.Lookup("vertices")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	value, err := fn.Handler(nil, nil)
	if err != nil || value.Str != "vertices" {
		t.Errorf("Expected the plugin override, got %+v, %v", value, err)
	}
}
