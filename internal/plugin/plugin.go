// internal/plugin/plugin.go
package plugin

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/theme"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the
// editor core. This acts as a controlled interface, preventing plugins
// from accessing everything.
type EditorAPI interface {
	// --- Buffer Access ---
	GetBufferLines(startLine, endLine int) ([][]byte, error)
	GetBufferLine(line int) ([]byte, error)
	GetBufferLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool
	GetBufferBytes() []byte

	// --- Buffer Modification ---
	// Use with caution! Ensure plugins don't corrupt state.
	InsertText(pos types.Position, text []byte) error
	DeleteRange(start, end types.Position) error

	// --- Provenance ---
	GetSegments() []track.Segment
	GetSourceStats() meta.Stats

	// --- Cursor & Viewport ---
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetViewport() (y, x int)

	// --- Persistence ---
	SaveBuffer(path ...string) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. It receives
	// the EditorAPI to interact with the core. Used for setup,
	// subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
