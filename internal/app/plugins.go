package app

import (
	"fmt"

	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/plugin"

	"github.com/ghostkey/ghostkey/plugins/autosave"
	"github.com/ghostkey/ghostkey/plugins/composition"
)

// registerPlugins initializes and registers all known plugins with the
// manager. Adding a new plugin means adding its constructor here.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		composition.New,
		autosave.New,
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		pluginName := p.Name()

		logger.Debugf("Registering plugin: %s", pluginName)
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", pluginName, err)
			logger.Errorf(wrappedErr.Error())
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}

	return finalErr
}
