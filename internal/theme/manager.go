// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
	loadError   error
}

// NewManager creates a theme manager, loading built-in themes and any
// TOML themes from the user config directory.
func NewManager() *Manager {
	mgr := &Manager{
		themes: make(map[string]*Theme),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v. Themes cannot be loaded from default location.", err)
		mgr.themesDir = ""
	} else {
		mgr.themesDir = filepath.Join(configDir, config.ConfigDirName, config.ThemesDirName)
	}

	mgr.loadBuiltinThemes()

	if mgr.themesDir != "" {
		mgr.loadError = mgr.LoadThemesFromDir()
		if mgr.loadError != nil {
			logger.Errorf("Error loading themes from '%s': %v", mgr.themesDir, mgr.loadError)
		}
	}

	if t, ok := mgr.themes[strings.ToLower(GhostKeyDark.Name)]; ok {
		mgr.activeTheme = t
	} else if len(mgr.themes) > 0 {
		for _, t := range mgr.themes {
			mgr.activeTheme = t
			break
		}
	}

	if mgr.activeTheme == nil {
		logger.Errorf("No themes loaded, cannot set active theme!")
		mgr.activeTheme = &Theme{
			Name: "Failsafe",
			Styles: map[string]tcell.Style{
				"Default": tcell.StyleDefault,
			},
		}
	} else {
		logger.Infof("Initial active theme set to: %s", mgr.activeTheme.Name)
	}

	return mgr
}

func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.themes[strings.ToLower(GhostKeyDark.Name)] = &GhostKeyDark
	m.themes[strings.ToLower(GhostKeyLight.Name)] = &GhostKeyLight
	logger.Debugf("Loaded built-in themes: %s, %s", GhostKeyDark.Name, GhostKeyLight.Name)
}

// LoadThemesFromDir scans the themes directory and loads .toml files.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		if err := os.MkdirAll(m.themesDir, 0755); err != nil {
			return fmt.Errorf("failed to create theme dir: %w", err)
		}
		return nil
	}

	logger.Infof("Loading themes from: %s", m.themesDir)
	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			filePath := filepath.Join(m.themesDir, file.Name())
			theme, err := LoadThemeFromFile(filePath)
			if err != nil {
				logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
				continue
			}

			themeNameLower := strings.ToLower(theme.Name)
			if existing, ok := m.themes[themeNameLower]; ok {
				logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
			}
			m.themes[themeNameLower] = theme
			loadedCount++
		}
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "NilFallback", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	nameLower := strings.ToLower(name)
	theme, ok := m.themes[nameLower]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}

	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
		SetCurrentTheme(theme)
	} else {
		logger.Debugf("Theme '%s' already active, no change needed", name)
	}

	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
