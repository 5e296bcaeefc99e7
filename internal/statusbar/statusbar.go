// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/theme"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault  tcell.Style // Default background/foreground
	StyleModified tcell.Style // Style for the modified indicator
	StyleMessage  tcell.Style // Style for temporary messages
	StyleCommand  tcell.Style // Style for command mode input

	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	cursorPos  types.Position
	isModified bool
	editorMode string

	// Composition of the buffer by input source.
	stats    meta.Stats
	hasStats bool

	// Command mode input line, shown instead of the default text.
	commandText   string
	commandActive bool

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
}

// ConfigFromTheme builds a status bar config from the active theme.
func ConfigFromTheme(t *theme.Theme) Config {
	return Config{
		StyleDefault:   t.GetStyle("StatusBar"),
		StyleModified:  t.GetStyle("StatusBarModified"),
		StyleMessage:   t.GetStyle("StatusBarMessage"),
		StyleCommand:   t.GetStyle("StatusBarCommand"),
		MessageTimeout: config.MessageTimeout,
	}
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
	}
}

// SetConfig replaces the bar's styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetComposition updates the typed/pasted breakdown readout.
func (sb *StatusBar) SetComposition(stats meta.Stats) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.stats = stats
	sb.hasStats = stats.TotalRunes > 0
}

// SetCommandInput shows the in-progress command line. An empty call to
// ClearCommandInput returns the bar to its default text.
func (sb *StatusBar) SetCommandInput(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandText = text
	sb.commandActive = true
}

// ClearCommandInput stops displaying the command line.
func (sb *StatusBar) ClearCommandInput() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandText = ""
	sb.commandActive = false
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the default status line text.
func (sb *StatusBar) getDefaultDisplayText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}

	composition := ""
	if sb.hasStats {
		composition = fmt.Sprintf(" -- typed %.0f%% / pasted %.0f%%",
			sb.stats.TypedPercent(), sb.stats.PastedPercent())
	}

	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}

	cursor := sb.cursorPos
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s%s",
		fPath, modifiedIndicator, cursor.Line+1, cursor.Col+1, composition, modeIndicator)
}

// Draw renders the status bar onto the screen using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1 // Status bar is always the last line

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text string

	switch {
	case sb.commandActive:
		text = sb.commandText
		style = sb.config.StyleCommand
	case isTempMsgActive:
		text = sb.tempMessage
		style = sb.config.StyleMessage
	default:
		text = sb.getDefaultDisplayText()
		style = sb.config.StyleDefault
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}

		runes := gr.Runes()
		if len(runes) > 0 {
			mainRune := runes[0]
			var combiningRunes []rune
			if len(runes) > 1 {
				combiningRunes = runes[1:]
			}
			screen.SetContent(currentX, y, mainRune, combiningRunes, style)
		}

		currentX += clusterWidth
	}
}
