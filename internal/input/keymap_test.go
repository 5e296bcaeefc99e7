// internal/input/keymap_test.go
package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEventBindings(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionMoveUp},
		{"ctrl+v paste", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), ActionPaste},
		{"ctrl+c copy", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionCopy},
		{"ctrl+x cut", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), ActionCut},
		{"ctrl+z undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionUndo},
		{"ctrl+y redo", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionRedo},
		{"ctrl+a select all", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), ActionSelectAll},
		{"ctrl+s save", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionSave},
		{"ctrl+q force quit", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionForceQuit},
		{"ctrl+v without reported mod", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModNone), ActionPaste},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"tab inserts", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionInsertTab},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionDeleteCharBackward},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionInsertNewLine},
		{"colon enters command mode", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEnterCommandMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tt.ev)
			if got.Action != tt.want {
				t.Errorf("got action %v, want %v", got.Action, tt.want)
			}
		})
	}
}

func TestProcessEventPlainRune(t *testing.T) {
	p := NewInputProcessor()
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if got.Action != ActionInsertRune || got.Rune != 'x' {
		t.Errorf("got %+v, want insert rune x", got)
	}
}
