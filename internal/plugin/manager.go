// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/ghostkey/ghostkey/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of
// plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	api     EditorAPI
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager. This should be
// called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins iterates through registered plugins and calls
// their Initialize method.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.Lock()
	m.api = api
	pluginsToInit := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		pluginsToInit = append(pluginsToInit, p)
	}
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(pluginsToInit))
	for _, plugin := range pluginsToInit {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
		} else {
			logger.Debugf("Plugin Manager: Initialized plugin '%s'", plugin.Name())
		}
	}
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	m.mu.RLock()
	pluginsToShutdown := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		pluginsToShutdown = append(pluginsToShutdown, p)
	}
	m.mu.RUnlock()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(pluginsToShutdown))
	for _, plugin := range pluginsToShutdown {
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name. Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
