package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

func TestDefaultDisplayText(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(sb *StatusBar)
		contains []string
	}{
		{
			name:     "empty bar shows placeholder name",
			setup:    func(sb *StatusBar) {},
			contains: []string{"[No Name]", "Line: 1, Col: 1"},
		},
		{
			name: "file with modified flag",
			setup: func(sb *StatusBar) {
				sb.SetFileInfo("notes.txt", true)
				sb.SetCursorInfo(types.Position{Line: 4, Col: 9})
			},
			contains: []string{"notes.txt", "[Modified]", "Line: 5, Col: 10"},
		},
		{
			name: "composition readout",
			setup: func(sb *StatusBar) {
				sb.SetFileInfo("draft.lakra", false)
				sb.SetComposition(meta.Compute([]track.Segment{
					{Start: 0, End: 75, Source: track.SourceTyped},
					{Start: 75, End: 100, Source: track.SourcePasted},
				}, 100))
			},
			contains: []string{"typed 75%", "pasted 25%"},
		},
		{
			name: "command mode indicator",
			setup: func(sb *StatusBar) {
				sb.SetEditorMode("COMMAND")
			},
			contains: []string{"-- COMMAND"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := New(DefaultConfig())
			tt.setup(sb)
			got := sb.getDefaultDisplayText()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("display text %q missing %q", got, want)
				}
			}
		})
	}
}

func TestCompositionHiddenForEmptyBuffer(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetComposition(meta.Compute(nil, 0))
	got := sb.getDefaultDisplayText()
	if strings.Contains(got, "typed") {
		t.Errorf("empty buffer should not show a composition readout, got %q", got)
	}
}

func TestTemporaryMessageLifecycle(t *testing.T) {
	sb := New(DefaultConfig())

	sb.SetTemporaryMessage("saved %s", "notes.txt")
	if sb.tempMessage != "saved notes.txt" {
		t.Errorf("tempMessage = %q, want %q", sb.tempMessage, "saved notes.txt")
	}
	if sb.tempMessageTime.IsZero() {
		t.Error("SetTemporaryMessage should stamp the message time")
	}

	sb.ResetTemporaryMessage()
	if sb.tempMessage != "" || !sb.tempMessageTime.IsZero() {
		t.Error("ResetTemporaryMessage should clear message and timestamp")
	}
}

func TestCommandInputOverridesDefaults(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetCommandInput(":wq")
	if !sb.commandActive || sb.commandText != ":wq" {
		t.Errorf("command input not recorded, active=%v text=%q", sb.commandActive, sb.commandText)
	}
	sb.ClearCommandInput()
	if sb.commandActive || sb.commandText != "" {
		t.Error("ClearCommandInput should deactivate the command line")
	}
}

func TestConfigTimeoutDefault(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MessageTimeout <= 0 {
		t.Error("default message timeout must be positive")
	}
	if cfg.MessageTimeout > time.Minute {
		t.Errorf("default message timeout %v is unreasonably long", cfg.MessageTimeout)
	}
}
