package plugins

import (
	"fmt"
	"sync"

	"github.com/agraph-dev/agraph/pkg/logging"
	"github.com/agraph-dev/agraph/pkg/query"
)

// Loader populates a function registry with the built-ins plus any
// registered plugins.
type Loader struct {
	mu      sync.Mutex
	plugins []Plugin
	byName  map[string]Plugin
	logger  logging.Logger
}

// NewLoader creates a new plugin loader.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		byName: make(map[string]Plugin),
		logger: logger.With(logging.Component("plugins")),
	}
}

// Add registers a plugin for installation. A plugin name may only be added
// once per loader.
func (l *Loader) Add(p Plugin) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byName[p.Name()]; exists {
		return fmt.Errorf("plugin %q is already registered", p.Name())
	}
	l.byName[p.Name()] = p
	l.plugins = append(l.plugins, p)
	return nil
}

// Plugins returns the registered plugins in registration order.
func (l *Loader) Plugins() []Plugin {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Plugin(nil), l.plugins...)
}

// Install seeds the registry with the built-in functions and then installs
// each registered plugin in order. Later installations may override earlier
// function names, including built-ins.
func (l *Loader) Install(registry *query.Registry) error {
	if err := query.RegisterBuiltins(registry); err != nil {
		return fmt.Errorf("installing builtins: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.plugins {
		if err := p.Register(registry); err != nil {
			return fmt.Errorf("installing plugin %q: %w", p.Name(), err)
		}
		l.logger.Debug("installed plugin",
			logging.String("plugin", p.Name()),
			logging.String("version", p.Version()))
	}
	return nil
}
