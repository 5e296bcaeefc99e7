// internal/track/classify.go
package track

// Origin describes the mechanism that produced an edit, as reported by
// the layer that handled the event. The classifier turns an origin plus
// the size of the insertion into a SourceKind.
type Origin int

const (
	// OriginKeyboard covers direct key presses (runes, Enter, Tab).
	OriginKeyboard Origin = iota
	// OriginClipboard covers paste commands, regardless of length.
	OriginClipboard
	// OriginReplay covers history replays (undo/redo), which carry
	// their own recorded kind and bypass classification.
	OriginReplay
	// OriginLoad covers text restored from a file.
	OriginLoad
)

// Classify maps an edit's origin and inserted length to a SourceKind.
//
// Clipboard insertions are always pasted, even a single character:
// the user did not type it. Keyboard insertions are typed. A keyboard
// event that somehow inserts many runes at once (e.g. an IME commit)
// is still typed; the deciding factor is the origin, with length only
// used when the origin is unknown.
func Classify(origin Origin, insertedRunes int) SourceKind {
	switch origin {
	case OriginClipboard:
		return SourcePasted
	case OriginKeyboard:
		return SourceTyped
	case OriginLoad:
		return SourceUnknown
	default:
		if insertedRunes > 1 {
			return SourcePasted
		}
		return SourceTyped
	}
}
