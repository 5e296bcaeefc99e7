// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/core"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/theme"
	"github.com/ghostkey/ghostkey/internal/types"
)

func calculateVisualColumn(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	str := string(line)
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		visualWidth += gr.Width()
		currentRuneIndex += len(runes)
	}
	return visualWidth
}

// isPositionWithin checks if pos is within the range [start, end)
// considering lines and columns. Assumes start <= end.
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	// The end position is exclusive.
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// provenanceRangesForLine converts the tracker's segments overlapping
// one buffer line into per-line styled column ranges.
func provenanceRangesForLine(editor *core.Editor, lineIdx int, lineBytes []byte) []types.StyledRange {
	tracker := editor.GetTracker()
	if tracker == nil {
		return nil
	}
	buf := editor.GetBuffer()
	lineStart := buf.OffsetForPosition(types.Position{Line: lineIdx, Col: 0})
	lineRunes := utf8.RuneCount(lineBytes)
	if lineRunes == 0 {
		return nil
	}

	segs := tracker.SegmentsInRange(lineStart, lineStart+lineRunes)
	if len(segs) == 0 {
		return nil
	}

	ranges := make([]types.StyledRange, 0, len(segs))
	for _, seg := range segs {
		startCol := seg.Start - lineStart
		endCol := seg.End - lineStart
		if startCol < 0 {
			startCol = 0
		}
		if endCol > lineRunes {
			endCol = lineRunes
		}
		if endCol <= startCol || seg.Source.StyleName() == "" {
			continue
		}
		ranges = append(ranges, types.StyledRange{
			StartCol:  startCol,
			EndCol:    endCol,
			StyleName: seg.Source.StyleName(),
		})
	}
	return ranges
}

// DrawBuffer draws the visible portion using the provided theme. Text
// is colored by its input source, with selections tinting the source
// color rather than hiding it.
func DrawBuffer(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawBuffer called with nil theme, using package default.")
		activeTheme = &theme.GhostKeyDark
	}

	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	lineNumberActiveStyle := activeTheme.GetStyle("LineNumberActive")
	selectionStyle := activeTheme.GetStyle("Selection")

	width, height := tuiManager.Size()
	viewY, viewX := editor.GetViewport()
	selStart, selEnd, selectionActive := editor.GetSelection()
	statusBarHeight := config.StatusBarHeight
	viewHeight := height - statusBarHeight

	if viewHeight <= 0 || width <= 0 {
		return
	}

	tabWidth := config.Get().Editor.TabWidth
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}

	lines := editor.GetBuffer().Lines()
	lineCount := len(lines)
	if lineCount == 0 {
		lineCount = 1
	}

	// Gutter sized for the largest line number.
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	lineNumberPadding := 1
	gutterWidth := maxDigits + lineNumberPadding
	if gutterWidth >= width {
		gutterWidth = 0
	}
	textAreaWidth := width - gutterWidth

	for screenY := 0; screenY < viewHeight; screenY++ {
		bufferLineIdx := screenY + viewY

		for fillX := 0; fillX < width; fillX++ {
			tuiManager.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		if gutterWidth > 0 && bufferLineIdx >= 0 && bufferLineIdx < len(lines) {
			lineNumStr := fmt.Sprintf("%*d", maxDigits, bufferLineIdx+1)
			currentLineStyle := lineNumberStyle
			if editor.GetCursor().Line == bufferLineIdx {
				currentLineStyle = lineNumberActiveStyle
			}
			for i, r := range []rune(lineNumStr) {
				if i < gutterWidth-lineNumberPadding {
					tuiManager.screen.SetContent(i, screenY, r, nil, currentLineStyle)
				}
			}
		}

		if bufferLineIdx < 0 || bufferLineIdx >= len(lines) {
			continue
		}

		lineBytes := lines[bufferLineIdx]
		provRanges := provenanceRangesForLine(editor, bufferLineIdx, lineBytes)

		gr := uniseg.NewGraphemes(string(lineBytes))
		currentVisualX := 0
		currentRuneIndex := 0

		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			clusterVisualStart := currentVisualX
			clusterVisualEnd := currentVisualX + clusterWidth

			screenX := (clusterVisualStart - viewX) + gutterWidth

			if clusterVisualEnd > viewX && clusterVisualStart < viewX+textAreaWidth {
				currentStyle := defaultStyle
				currentPos := types.Position{Line: bufferLineIdx, Col: currentRuneIndex}

				// Provenance coloring first, then selection on top.
				provName := ""
				for _, pr := range provRanges {
					if currentRuneIndex >= pr.StartCol && currentRuneIndex < pr.EndCol {
						provName = pr.StyleName
						currentStyle = activeTheme.GetStyle(provName)
						break
					}
				}
				if selectionActive && isPositionWithin(currentPos, selStart, selEnd) {
					if provName != "" {
						currentStyle = activeTheme.GetStyle(provName + ".highlight")
					} else {
						currentStyle = selectionStyle
					}
				}

				if screenX >= gutterWidth && screenX < width {
					mainRune := clusterRunes[0]
					combining := clusterRunes[1:]

					if mainRune == '\t' {
						visualScreenX := currentVisualX - viewX + gutterWidth
						spacesToDraw := tabWidth - (visualScreenX % tabWidth)
						for i := 0; i < spacesToDraw && screenX+i < width; i++ {
							tuiManager.screen.SetContent(screenX+i, screenY, ' ', nil, currentStyle)
						}
					} else {
						tuiManager.screen.SetContent(screenX, screenY, mainRune, combining, currentStyle)
						for cw := 1; cw < clusterWidth; cw++ {
							fillX := screenX + cw
							if fillX < width {
								tuiManager.screen.SetContent(fillX, screenY, ' ', nil, currentStyle)
							}
						}
					}
				}
			}

			currentVisualX += clusterWidth
			currentRuneIndex += len(clusterRunes)
			if currentVisualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor using visual width
// calculations.
func DrawCursor(tuiManager *TUI, editor *core.Editor) {
	cursor := editor.GetCursor()
	viewY, viewX := editor.GetViewport()

	lineCount := editor.GetBuffer().LineCount()
	if lineCount == 0 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	lineNumberPadding := 1
	gutterWidth := maxDigits + lineNumberPadding
	width, height := tuiManager.Size()
	if gutterWidth >= width {
		gutterWidth = 0
	}

	lineBytes, err := editor.GetBuffer().Line(cursor.Line)
	cursorVisualCol := 0
	if err == nil {
		cursorVisualCol = calculateVisualColumn(lineBytes, cursor.Col)
	} else {
		logger.Debugf("DrawCursor: Error getting line %d: %v", cursor.Line, err)
	}

	screenX := (cursorVisualCol - viewX) + gutterWidth
	screenY := cursor.Line - viewY

	viewHeight := height - config.StatusBarHeight
	textAreaWidth := width - gutterWidth

	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight || viewHeight <= 0 || textAreaWidth <= 0 {
		tuiManager.screen.HideCursor()
	} else {
		tuiManager.screen.ShowCursor(screenX, screenY)
	}
}
