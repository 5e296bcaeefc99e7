// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ghostkey/ghostkey/internal/logger"
)

// Theme maps style names to tcell styles. Provenance coloring uses
// the "typed" and "pasted" styles, with ".highlight" variants for the
// emphasized (selection-adjacent) rendering.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name with fallback: exact name, then the
// base name before the first dot, then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	baseName := name
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName = name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// toColorful converts a tcell color to a colorful.Color for blending.
func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.TrueColor().RGB()
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// BlendToward mixes a color toward a target in Lab space. t=0 keeps
// the original, t=1 yields the target.
func BlendToward(c, target tcell.Color, t float64) tcell.Color {
	return toTcell(toColorful(c).BlendLab(toColorful(target), t))
}

// --- GhostKey Dark (built-in) ---

var GhostKeyDark Theme

func init() {
	gkBackground := tcell.NewHexColor(0x2a2f38) // status bar background
	gkForeground := tcell.NewHexColor(0xc5cdd9) // default text
	gkGutter := tcell.NewHexColor(0x5c6370)     // line numbers
	gkYellow := tcell.NewHexColor(0xe5c07b)     // modified indicator
	gkGreen := tcell.NewHexColor(0x90ee90)      // typed provenance
	gkPink := tcell.NewHexColor(0xffb6c1)       // pasted provenance

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(gkForeground)

	// Muted variants keep the provenance hue visible without washing
	// out the text on a dark background.
	typedFg := BlendToward(gkGreen, gkForeground, 0.25)
	pastedFg := BlendToward(gkPink, gkForeground, 0.25)
	typedBg := BlendToward(gkGreen, gkBackground, 0.80)
	pastedBg := BlendToward(gkPink, gkBackground, 0.80)

	GhostKeyDark = Theme{
		Name:   "GhostKey Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Selection": baseStyle.Reverse(true),

			"StatusBar":         tcell.StyleDefault.Background(gkBackground).Foreground(gkForeground),
			"StatusBarModified": tcell.StyleDefault.Background(gkBackground).Foreground(gkYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(gkBackground).Foreground(gkForeground).Bold(true),
			"StatusBarCommand":  tcell.StyleDefault.Background(gkBackground).Foreground(gkGreen).Bold(true),

			"LineNumber":       baseStyle.Foreground(gkGutter),
			"LineNumberActive": baseStyle.Foreground(gkForeground),

			// Provenance coloring.
			"typed":            baseStyle.Foreground(typedFg),
			"pasted":           baseStyle.Foreground(pastedFg),
			"typed.highlight":  baseStyle.Background(typedBg).Foreground(gkForeground),
			"pasted.highlight": baseStyle.Background(pastedBg).Foreground(gkForeground),
		},
	}

	CurrentTheme = &GhostKeyDark
}

// --- GhostKey Light (built-in) ---

var GhostKeyLight Theme

func init() {
	lightBackground := tcell.NewHexColor(0xd7dae0) // status bar background
	lightForeground := tcell.NewHexColor(0x383a42) // default text
	lightGutter := tcell.NewHexColor(0x9d9d9f)     // line numbers
	lightYellow := tcell.NewHexColor(0x986801)     // modified indicator
	lightGreen := tcell.NewHexColor(0x2e7d32)      // typed provenance
	lightRed := tcell.NewHexColor(0xc62828)        // pasted provenance

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lightForeground)

	typedBg := BlendToward(lightGreen, lightBackground, 0.85)
	pastedBg := BlendToward(lightRed, lightBackground, 0.85)

	GhostKeyLight = Theme{
		Name:   "GhostKey Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Selection": baseStyle.Reverse(true),

			"StatusBar":         tcell.StyleDefault.Background(lightBackground).Foreground(lightForeground),
			"StatusBarModified": tcell.StyleDefault.Background(lightBackground).Foreground(lightYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(lightBackground).Foreground(lightForeground).Bold(true),
			"StatusBarCommand":  tcell.StyleDefault.Background(lightBackground).Foreground(lightGreen).Bold(true),

			"LineNumber":       baseStyle.Foreground(lightGutter),
			"LineNumberActive": baseStyle.Foreground(lightForeground),

			"typed":            baseStyle.Foreground(lightGreen),
			"pasted":           baseStyle.Foreground(lightRed),
			"typed.highlight":  baseStyle.Background(typedBg).Foreground(lightForeground),
			"pasted.highlight": baseStyle.Background(pastedBg).Foreground(lightForeground),
		},
	}
}

// CurrentTheme is the process-wide active theme reference.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &GhostKeyDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
