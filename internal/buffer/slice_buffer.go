// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/ghostkey/ghostkey/internal/types"
	"github.com/ghostkey/ghostkey/internal/utils"
)

// SliceBuffer stores the document as a slice of line byte slices.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines: [][]byte{[]byte("")},
	}
}

// Load reads a file into the buffer. Replaces existing content.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// LoadBytes replaces the buffer content from memory, used when the
// text was extracted from a container file rather than read directly.
func (sb *SliceBuffer) LoadBytes(content []byte, filePath string) {
	newLines := bytes.Split(content, []byte("\n"))
	lines := make([][]byte, len(newLines))
	for i, line := range newLines {
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		lines[i] = lineCopy
	}
	if len(lines) == 0 {
		lines = [][]byte{[]byte("")}
	}
	sb.lines = lines
	sb.filePath = filePath
	sb.modified = false
}

// Lines returns the underlying line slices.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines in the buffer.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the bytes of a single line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes returns the full buffer content joined with newlines.
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// RuneCount returns the buffer length in runes, counting one rune per
// line separator.
func (sb *SliceBuffer) RuneCount() int {
	count := 0
	for i, line := range sb.lines {
		count += utf8.RuneCount(line)
		if i < len(sb.lines)-1 {
			count++ // newline
		}
	}
	return count
}

// OffsetForPosition converts a (line, column) position to an absolute
// rune offset. Out-of-range positions are clamped.
func (sb *SliceBuffer) OffsetForPosition(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	offset := 0
	for i := 0; i < pos.Line && i < len(sb.lines); i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	if pos.Line >= len(sb.lines) {
		return sb.RuneCount()
	}
	lineRunes := utf8.RuneCount(sb.lines[pos.Line])
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if col > lineRunes {
		col = lineRunes
	}
	return offset + col
}

// PositionForOffset converts an absolute rune offset back to a
// (line, column) position. Out-of-range offsets are clamped.
func (sb *SliceBuffer) PositionForOffset(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	remaining := offset
	for i, line := range sb.lines {
		lineRunes := utf8.RuneCount(line)
		if remaining <= lineRunes {
			return types.Position{Line: i, Col: remaining}
		}
		remaining -= lineRunes + 1
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// Save writes the buffer content to the stored filePath.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := sb.Bytes()
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// MarkSaved records that the buffer content was persisted externally
// (e.g. wrapped in a container file by the caller).
func (sb *SliceBuffer) MarkSaved(filePath string) {
	if filePath != "" {
		sb.filePath = filePath
	}
	sb.modified = false
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Buffer Modification Methods ---

// Insert inserts text at a given position. Handles single/multiple
// lines. The returned EditInfo spans the inserted range.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	if len(text) == 0 {
		return types.EditInfo{}, nil
	}

	validPos, byteOffset, err := sb.validatePosition(pos)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid insert position: %w", err)
	}

	startOffset := sb.OffsetForPosition(validPos)
	insertedRunes := utf8.RuneCount(text)

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine[byteOffset:]))
	copy(tail, currentLine[byteOffset:])

	sb.lines[validPos.Line] = append(currentLine[:byteOffset], insertLines[0]...)

	if len(insertLines) > 1 {
		newLines := make([][]byte, len(insertLines)-1)
		for i := 1; i < len(insertLines); i++ {
			lineCopy := make([]byte, len(insertLines[i]))
			copy(lineCopy, insertLines[i])
			newLines[i-1] = lineCopy
		}
		newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)
		if validPos.Line+1 > len(sb.lines) {
			sb.lines = append(sb.lines, newLines...)
		} else {
			sb.lines = append(sb.lines[:validPos.Line+1], append(newLines, sb.lines[validPos.Line+1:]...)...)
		}
	} else {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
	}

	newEndOffset := startOffset + insertedRunes
	edit := types.EditInfo{
		StartOffset:    startOffset,
		OldEndOffset:   startOffset,
		NewEndOffset:   newEndOffset,
		StartPosition:  validPos,
		OldEndPosition: validPos,
		NewEndPosition: sb.PositionForOffset(newEndOffset),
	}
	return edit, nil
}

// Delete removes text within a given range (start inclusive, end
// exclusive). The returned EditInfo spans the removed range.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if start == end {
		return types.EditInfo{}, nil
	}

	vStart, vEnd, startByteOff, endByteOff, err := sb.validateAndGetByteOffsets(start, end)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid delete range: %w", err)
	}

	if vStart == vEnd && startByteOff == endByteOff {
		return types.EditInfo{}, nil
	}

	startOffset := sb.OffsetForPosition(vStart)
	oldEndOffset := sb.OffsetForPosition(vEnd)

	sb.modified = true

	startLineBytes := sb.lines[vStart.Line]

	if vStart.Line == vEnd.Line {
		// Deletion within a single line.
		if endByteOff > len(startLineBytes) {
			endByteOff = len(startLineBytes)
		}
		if startByteOff > len(startLineBytes) {
			startByteOff = len(startLineBytes)
		}
		if startByteOff > endByteOff {
			startByteOff = endByteOff
		}
		sb.lines[vStart.Line] = append(startLineBytes[:startByteOff], startLineBytes[endByteOff:]...)
	} else {
		// Deletion spans multiple lines: keep the head of the start
		// line and the tail of the end line, drop everything between.
		endLineBytes := sb.lines[vEnd.Line]

		startPart := startLineBytes[:startByteOff]
		endPart := endLineBytes[endByteOff:]
		sb.lines[vStart.Line] = append(startPart, endPart...)

		firstLineToRemove := vStart.Line + 1
		lastLineToRemove := vEnd.Line
		if firstLineToRemove <= lastLineToRemove && lastLineToRemove < len(sb.lines) {
			if lastLineToRemove+1 >= len(sb.lines) {
				sb.lines = sb.lines[:firstLineToRemove]
			} else {
				sb.lines = append(sb.lines[:firstLineToRemove], sb.lines[lastLineToRemove+1:]...)
			}
		}
	}

	// Buffer always has at least one line.
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}

	edit := types.EditInfo{
		StartOffset:    startOffset,
		OldEndOffset:   oldEndOffset,
		NewEndOffset:   startOffset,
		StartPosition:  vStart,
		OldEndPosition: vEnd,
		NewEndPosition: vStart,
	}
	return edit, nil
}

// validateAndGetByteOffsets validates start and end positions and
// returns their byte offsets within their lines, ensuring start <= end.
func (sb *SliceBuffer) validateAndGetByteOffsets(start, end types.Position) (vStart, vEnd types.Position, startOffset, endOffset int, err error) {
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}

	var startErr, endErr error
	vStart, startOffset, startErr = sb.validatePosition(start)
	vEnd, endOffset, endErr = sb.validatePosition(end)

	if startErr != nil || endErr != nil {
		return vStart, vEnd, 0, 0, fmt.Errorf("invalid range: startErr=%v, endErr=%v", startErr, endErr)
	}

	if vStart.Line == vEnd.Line {
		_, endOffset, _ = sb.validatePositionOnLine(vEnd.Col, vStart.Line)
		if startOffset > endOffset {
			startOffset = endOffset
		}
	}

	return vStart, vEnd, startOffset, endOffset, nil
}

// validatePositionOnLine returns the clamped column and its byte
// offset on the given line.
func (sb *SliceBuffer) validatePositionOnLine(col int, lineIndex int) (validCol int, byteOffset int, err error) {
	if lineIndex < 0 || lineIndex >= len(sb.lines) {
		return 0, 0, fmt.Errorf("line index %d out of bounds", lineIndex)
	}
	if col < 0 {
		col = 0
	}
	currentLine := sb.lines[lineIndex]
	byteOff := utils.RuneIndexToByteOffset(currentLine, col)
	if byteOff < 0 {
		col = utf8.RuneCount(currentLine)
		byteOff = len(currentLine)
	}
	return col, byteOff, nil
}

// validatePosition clamps a position to buffer bounds and returns the
// byte offset of the column within its line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (validPos types.Position, byteOffset int, err error) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
		if pos.Line < 0 {
			sb.lines = append(sb.lines, []byte(""))
			pos.Line = 0
		}
	}

	validLine := pos.Line
	var validCol int
	validCol, byteOffset, err = sb.validatePositionOnLine(pos.Col, validLine)
	if err != nil {
		return types.Position{}, 0, err
	}

	return types.Position{Line: validLine, Col: validCol}, byteOffset, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
