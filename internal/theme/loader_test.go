// internal/theme/loader_test.go
package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadThemeFromFile(t *testing.T) {
	path := writeTheme(t, `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#222222"
bg = "#fafafa"

[styles.typed]
fg = "#2f7d32"

[styles.pasted]
fg = "#b03050"
bold = true
`)
	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if th.Name != "Paper" || th.IsDark {
		t.Errorf("theme header = %q dark=%v", th.Name, th.IsDark)
	}

	fg, _, attrs := th.Styles["pasted"].Decompose()
	if fg != tcell.NewHexColor(0xb03050) {
		t.Errorf("pasted fg = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("pasted style should be bold")
	}

	// Non-Default styles inherit the Default background.
	_, bg, _ := th.Styles["typed"].Decompose()
	if bg != tcell.NewHexColor(0xfafafa) {
		t.Errorf("typed bg = %v, want inherited Default bg", bg)
	}
}

func TestLoadThemeDerivesHighlightVariants(t *testing.T) {
	path := writeTheme(t, `
name = "Minimal"

[styles.Default]
fg = "#c5cdd9"
bg = "#2a2f38"

[styles.typed]
fg = "#90ee90"
`)
	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	hi, ok := th.Styles["typed.highlight"]
	if !ok {
		t.Fatal("typed.highlight should have been derived")
	}
	_, bg, _ := hi.Decompose()
	if bg == tcell.ColorDefault || bg == tcell.NewHexColor(0x2a2f38) {
		t.Errorf("derived highlight bg = %v, want a tint distinct from the base background", bg)
	}
}

func TestLoadThemeMissingNameUsesFilename(t *testing.T) {
	path := writeTheme(t, `
[styles.Default]
fg = "#ffffff"
`)
	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("name = %q, want custom", th.Name)
	}
}

func TestLoadThemeSkipsBadStyle(t *testing.T) {
	path := writeTheme(t, `
name = "Broken"

[styles.Default]
fg = "#101010"

[styles.typed]
fg = "chartreuse-ish"
`)
	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if _, ok := th.Styles["typed"]; ok {
		t.Error("unparseable style should be skipped")
	}
}

func TestGetStyleFallbackChain(t *testing.T) {
	th := &Theme{
		Name: "T",
		Styles: map[string]tcell.Style{
			"Default": tcell.StyleDefault.Foreground(tcell.ColorWhite),
			"typed":   tcell.StyleDefault.Foreground(tcell.ColorGreen),
		},
	}
	if got := th.GetStyle("typed"); got != th.Styles["typed"] {
		t.Error("exact lookup failed")
	}
	if got := th.GetStyle("typed.highlight"); got != th.Styles["typed"] {
		t.Error("base-name fallback failed")
	}
	if got := th.GetStyle("nonexistent"); got != th.Styles["Default"] {
		t.Error("Default fallback failed")
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#90EE90", tcell.NewHexColor(0x90ee90), false},
		{" #000000 ", tcell.NewHexColor(0x000000), false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"#fff", tcell.ColorDefault, true},
		{"magenta", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := parseColorString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseColorString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseColorString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
