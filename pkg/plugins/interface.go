package plugins

import "github.com/agraph-dev/agraph/pkg/query"

// Plugin extends the query/transform engine with additional functions.
// Discovery and loading of external plugin binaries happens outside this
// core; whatever mechanism finds a plugin hands it to the Loader, which
// installs its functions into the open registry next to the built-ins.
type Plugin interface {
	// Name returns the plugin name (e.g. "path-report")
	Name() string

	// Version returns the plugin version
	Version() string

	// Register installs the plugin's functions into the registry
	Register(registry *query.Registry) error
}

// FuncPlugin is a convenience Plugin wrapping a set of functions.
type FuncPlugin struct {
	PluginName    string
	PluginVersion string
	Functions     []*query.Function
}

// Name returns the plugin name.
func (p *FuncPlugin) Name() string { return p.PluginName }

// Version returns the plugin version.
func (p *FuncPlugin) Version() string { return p.PluginVersion }

// Register installs every wrapped function.
func (p *FuncPlugin) Register(registry *query.Registry) error {
	for _, fn := range p.Functions {
		if err := registry.Register(fn); err != nil {
			return err
		}
	}
	return nil
}
