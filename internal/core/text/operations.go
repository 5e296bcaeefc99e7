// Package text implements the editor's typing-level mutations.
package text

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/core/history"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
	"github.com/ghostkey/ghostkey/internal/utils"
)

// Operations handles text insertion/deletion. Everything inserted
// through this manager originates from the keyboard and is classified
// accordingly.
type Operations struct {
	editor EditorInterface
}

// EditorInterface defines editor methods needed.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetEventManager() *event.Manager
	GetTracker() *track.Tracker
	ClearSelection()
	HasSelection() bool
	GetSelection() (start types.Position, end types.Position, ok bool)
	ScrollToCursor()
	GetHistoryManager() *history.Manager
}

// NewOperations creates a text operations manager.
func NewOperations(editor EditorInterface) *Operations {
	return &Operations{editor: editor}
}

// InsertRune inserts a single rune at the cursor.
func (o *Operations) InsertRune(r rune) error {
	return o.insertTyped(string(r))
}

// InsertNewLine inserts a newline at the cursor.
func (o *Operations) InsertNewLine() error {
	return o.insertTyped("\n")
}

// InsertTab inserts a tab character at the cursor.
func (o *Operations) InsertTab() error {
	return o.insertTyped("\t")
}

// insertTyped replaces any selection with text entered via keystroke.
func (o *Operations) insertTyped(s string) error {
	if o.editor.HasSelection() {
		if err := o.deleteRange(o.editor.GetCursor()); err != nil {
			return err
		}
	}

	textBytes := []byte(s)
	cursorBefore := o.editor.GetCursor()
	kind := track.Classify(track.OriginKeyboard, utf8.RuneCount(textBytes))

	editInfo, err := o.editor.GetBuffer().Insert(cursorBefore, textBytes)
	if err != nil {
		return err
	}

	cursorAfter := editInfo.NewEndPosition
	o.editor.SetCursor(cursorAfter)

	if histMgr := o.editor.GetHistoryManager(); histMgr != nil {
		histMgr.RecordChange(history.Change{
			Type:          history.InsertAction,
			Text:          textBytes,
			StartPosition: editInfo.StartPosition,
			EndPosition:   cursorAfter,
			CursorBefore:  cursorBefore,
			Source:        kind,
		})
	}

	o.editor.ScrollToCursor()

	if eventManager := o.editor.GetEventManager(); eventManager != nil {
		eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo, Source: kind})
	}
	return nil
}

// DeleteBackward deletes the character before the cursor, or the
// active selection.
func (o *Operations) DeleteBackward() error {
	if o.editor.HasSelection() {
		return o.deleteRange(o.editor.GetCursor())
	}

	currentPos := o.editor.GetCursor()
	start := currentPos
	end := currentPos
	var deletedText []byte

	if currentPos.Col > 0 {
		start.Col--
		deletedText = o.runeAt(start)
	} else if currentPos.Line > 0 {
		start.Line--
		prevLineBytes, err := o.editor.GetBuffer().Line(start.Line)
		if err != nil {
			return fmt.Errorf("cannot get previous line %d: %w", start.Line, err)
		}
		start.Col = utf8.RuneCount(prevLineBytes)
		deletedText = []byte{'\n'}
	} else {
		return nil // At beginning of buffer, nothing to delete
	}

	return o.performDelete(start, end, deletedText, currentPos)
}

// DeleteForward deletes the character after the cursor, or the active
// selection.
func (o *Operations) DeleteForward() error {
	if o.editor.HasSelection() {
		return o.deleteRange(o.editor.GetCursor())
	}

	cursorBefore := o.editor.GetCursor()
	start := cursorBefore
	end := cursorBefore
	var deletedText []byte

	lineBytes, err := o.editor.GetBuffer().Line(start.Line)
	if err != nil {
		return fmt.Errorf("cannot get current line %d: %w", start.Line, err)
	}

	if start.Col < utf8.RuneCount(lineBytes) {
		end.Col++
		deletedText = o.runeAt(start)
	} else if start.Line < o.editor.GetBuffer().LineCount()-1 {
		end.Line++
		end.Col = 0
		deletedText = []byte{'\n'}
	} else {
		return nil // At end of buffer, nothing to delete
	}

	return o.performDelete(start, end, deletedText, cursorBefore)
}

// deleteRange removes the current selection.
func (o *Operations) deleteRange(cursorBefore types.Position) error {
	start, end, ok := o.editor.GetSelection()
	if !ok {
		return nil
	}

	deletedText, err := ExtractTextFromRange(o.editor.GetBuffer(), start, end)
	if err != nil {
		return fmt.Errorf("failed to extract selected text: %w", err)
	}

	o.editor.ClearSelection()
	return o.performDelete(start, end, deletedText, cursorBefore)
}

// performDelete snapshots provenance for the doomed range, mutates the
// buffer, records history, and dispatches the modified event.
func (o *Operations) performDelete(start, end types.Position, deletedText []byte, cursorBefore types.Position) error {
	buf := o.editor.GetBuffer()

	var removedSegs []track.Segment
	if tracker := o.editor.GetTracker(); tracker != nil {
		startOff := buf.OffsetForPosition(start)
		endOff := buf.OffsetForPosition(end)
		removedSegs = relativeSegments(tracker.SegmentsInRange(startOff, endOff), startOff, endOff)
	}

	editInfo, err := buf.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	if histMgr := o.editor.GetHistoryManager(); histMgr != nil && len(deletedText) > 0 {
		histMgr.RecordChange(history.Change{
			Type:          history.DeleteAction,
			Text:          deletedText,
			StartPosition: editInfo.StartPosition,
			EndPosition:   editInfo.OldEndPosition,
			CursorBefore:  cursorBefore,
			Segments:      removedSegs,
		})
	}

	o.editor.SetCursor(editInfo.StartPosition)
	o.editor.ScrollToCursor()

	if eventManager := o.editor.GetEventManager(); eventManager != nil {
		eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown})
	}
	return nil
}

// runeAt returns the bytes of the single rune at pos, or nil.
func (o *Operations) runeAt(pos types.Position) []byte {
	lineBytes, err := o.editor.GetBuffer().Line(pos.Line)
	if err != nil {
		return nil
	}
	byteOff := utils.RuneIndexToByteOffset(lineBytes, pos.Col)
	if byteOff < 0 || byteOff >= len(lineBytes) {
		return nil
	}
	r, size := utf8.DecodeRune(lineBytes[byteOff:])
	if r == utf8.RuneError && size <= 1 {
		return nil
	}
	out := make([]byte, size)
	copy(out, lineBytes[byteOff:byteOff+size])
	return out
}

// relativeSegments clips segments to [startOff, endOff) and rebases
// them to offset zero.
func relativeSegments(segs []track.Segment, startOff, endOff int) []track.Segment {
	var out []track.Segment
	for _, seg := range segs {
		if seg.Start < startOff {
			seg.Start = startOff
		}
		if seg.End > endOff {
			seg.End = endOff
		}
		if seg.End <= seg.Start {
			continue
		}
		seg.Start -= startOff
		seg.End -= startOff
		out = append(out, seg)
	}
	return out
}

// ExtractTextFromRange returns the text between start and end
// positions (rune columns, end exclusive).
func ExtractTextFromRange(buf buffer.Buffer, start, end types.Position) ([]byte, error) {
	var content bytes.Buffer

	if start.Line == end.Line {
		lineBytes, err := buf.Line(start.Line)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", start.Line, err)
		}
		startIdx := utils.RuneIndexToByteOffset(lineBytes, start.Col)
		endIdx := utils.RuneIndexToByteOffset(lineBytes, end.Col)
		if startIdx < 0 {
			startIdx = len(lineBytes)
		}
		if endIdx < 0 {
			endIdx = len(lineBytes)
		}
		if startIdx <= endIdx {
			content.Write(lineBytes[startIdx:endIdx])
		}
		return content.Bytes(), nil
	}

	for lineIdx := start.Line; lineIdx <= end.Line; lineIdx++ {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", lineIdx, err)
		}
		switch {
		case lineIdx == start.Line:
			startIdx := utils.RuneIndexToByteOffset(lineBytes, start.Col)
			if startIdx < 0 {
				startIdx = len(lineBytes)
			}
			content.Write(lineBytes[startIdx:])
			content.WriteByte('\n')
		case lineIdx == end.Line:
			endIdx := utils.RuneIndexToByteOffset(lineBytes, end.Col)
			if endIdx < 0 {
				endIdx = len(lineBytes)
			}
			content.Write(lineBytes[:endIdx])
		default:
			content.Write(lineBytes)
			content.WriteByte('\n')
		}
	}
	return content.Bytes(), nil
}
