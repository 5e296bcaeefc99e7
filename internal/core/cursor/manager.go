// Package cursor handles cursor positioning and viewport management.
package cursor

import (
	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Editor is the interface the cursor manager expects from the editor.
type Editor interface {
	GetBuffer() buffer.Buffer
	ScrollOff() int
}

// Manager handles cursor positioning and viewport management.
type Manager struct {
	editor      Editor
	position    types.Position
	viewportTop int
	viewportX   int // leftmost visible visual column
	viewWidth   int
	viewHeight  int
}

// NewManager creates a new cursor manager.
func NewManager(editor Editor) *Manager {
	return &Manager{
		editor:      editor,
		position:    types.Position{Line: 0, Col: 0},
		viewportTop: 0,
	}
}

// SetViewSize updates the view dimensions.
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
}

// GetViewportTop returns the top visible line index.
func (m *Manager) GetViewportTop() int {
	return m.viewportTop
}

// GetViewportX returns the leftmost visible visual column.
func (m *Manager) GetViewportX() int {
	return m.viewportX
}

// GetPosition returns the current cursor position.
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition sets the cursor position, clamping to the buffer.
func (m *Manager) SetPosition(pos types.Position) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		logger.Warnf("CursorManager.SetPosition: Buffer is nil")
		return
	}

	lineCount := buf.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}

	lineBytes, err := buf.Line(pos.Line)
	if err != nil {
		logger.Warnf("CursorManager.SetPosition: Failed to get line %d: %v", pos.Line, err)
		return
	}

	line := string(lineBytes)
	runeLen := len([]rune(line))
	if pos.Col > runeLen {
		pos.Col = runeLen
	}

	m.position = pos
	m.ScrollToCursor()
}

// Move moves the cursor by the given delta.
func (m *Manager) Move(deltaLine, deltaCol int) {
	newPos := types.Position{
		Line: m.position.Line + deltaLine,
		Col:  m.position.Col + deltaCol,
	}
	m.SetPosition(newPos)
}

// PageMove moves the cursor by the given number of pages.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return // View not initialized
	}
	m.Move(deltaPages*m.viewHeight, 0)
}

// MoveToLineStart moves the cursor to the first non-whitespace
// character of the current line (column 0 if the line is blank).
func (m *Manager) MoveToLineStart() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}

	firstNonWS := 0
	for i, ch := range string(lineBytes) {
		if ch != ' ' && ch != '\t' {
			firstNonWS = i
			break
		}
	}
	m.SetPosition(types.Position{Line: m.position.Line, Col: firstNonWS})
}

// MoveToLineEnd moves the cursor past the last character of the line.
func (m *Manager) MoveToLineEnd() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}
	m.SetPosition(types.Position{Line: m.position.Line, Col: len([]rune(string(lineBytes)))})
}

// ScrollToCursor ensures the cursor is visible in the viewport.
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 {
		return // View not initialized yet
	}

	scrollOff := m.editor.ScrollOff()
	if scrollOff*2 >= m.viewHeight {
		scrollOff = (m.viewHeight - 1) / 2
		if scrollOff < 0 {
			scrollOff = 0
		}
	}

	// Vertical
	if m.position.Line < m.viewportTop+scrollOff {
		m.viewportTop = m.position.Line - scrollOff
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	} else if m.position.Line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = m.position.Line - m.viewHeight + scrollOff + 1
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	}

	// Horizontal, in visual columns
	if m.viewWidth <= 0 {
		return
	}
	visualCol := 0
	if buf := m.editor.GetBuffer(); buf != nil {
		if lineBytes, err := buf.Line(m.position.Line); err == nil {
			visualCol = GetVisualCol(string(lineBytes), m.position.Col, config.Get().Editor.TabWidth)
		}
	}
	if visualCol < m.viewportX {
		m.viewportX = visualCol
	} else if visualCol >= m.viewportX+m.viewWidth {
		m.viewportX = visualCol - m.viewWidth + 1
	}
}

// GetVisualCol translates a buffer column to a visual column,
// expanding tabs to the next tab stop.
func GetVisualCol(line string, col int, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}
	visualCol := 0
	runeIdx := 0
	for _, ch := range line {
		if runeIdx >= col {
			break
		}
		if ch == '\t' {
			visualCol = (visualCol/tabWidth + 1) * tabWidth
		} else {
			visualCol++
		}
		runeIdx++
	}
	return visualCol
}

// GetBufferCol translates a visual column back to a buffer column.
func GetBufferCol(line string, visualCol int, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}
	currentVisual := 0
	runeIdx := 0
	for _, ch := range line {
		if currentVisual >= visualCol {
			return runeIdx
		}
		if ch == '\t' {
			currentVisual = (currentVisual/tabWidth + 1) * tabWidth
		} else {
			currentVisual++
		}
		runeIdx++
	}
	return runeIdx
}
