package config

import "time"

// Base application details
const AppName = "ghostkey"
const ConfigDirName = "ghostkey"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "ghostkey.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing defaults. These feed NewDefaultConfig().
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Autosave
const DefaultAutosaveInterval = 30 * time.Second
