package autosave

import (
	"sync"
	"time"

	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/plugin"
	"github.com/ghostkey/ghostkey/internal/utils"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave saves modified buffers once edits go quiet for the
// configured interval. Saves go through the editor's normal save
// path, so source metadata is written too.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration

	debouncer utils.Debouncer
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and hooks buffer modifications. An
// autosave interval of zero disables the plugin.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api

	seconds := config.Get().Editor.AutosaveSeconds

	p.mutex.Lock()
	p.enabled = seconds > 0
	p.interval = time.Duration(seconds) * time.Second
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", p.Name(), isEnabled, interval)

	if isEnabled {
		api.SubscribeEvent(event.TypeBufferModified, p.onBufferModified)
	}
	return nil
}

// Shutdown disables further saves. A pending debounced save becomes a
// no-op.
func (p *AutoSave) Shutdown() error {
	p.mutex.Lock()
	p.enabled = false
	p.mutex.Unlock()
	return nil
}

// onBufferModified restarts the quiet-period timer on every edit.
func (p *AutoSave) onBufferModified(e event.Event) bool {
	p.mutex.RLock()
	enabled := p.enabled
	interval := p.interval
	p.mutex.RUnlock()

	if enabled {
		p.debouncer.Debounce(interval, p.saveIfModified)
	}
	return false
}

// saveIfModified checks if the buffer is modified and saves it.
func (p *AutoSave) saveIfModified() {
	p.mutex.RLock()
	enabled := p.enabled
	p.mutex.RUnlock()

	if !enabled || p.api == nil {
		return
	}

	if !p.api.IsBufferModified() {
		return
	}

	filePath := p.api.GetBufferFilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}

	logger.Infof("%s: Auto-saving modified buffer: %s", p.Name(), filePath)
	if err := p.api.SaveBuffer(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
	} else {
		logger.Debugf("%s: Auto-save successful for '%s'", p.Name(), filePath)
	}
}
