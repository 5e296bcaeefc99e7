// plugins/composition/composition.go
package composition

import (
	"bytes"
	"fmt"

	"github.com/ghostkey/ghostkey/internal/plugin"
)

// Ensure Composition implements plugin.Plugin
var _ plugin.Plugin = (*Composition)(nil)

// Composition reports how much of the buffer was typed by hand versus
// pasted, alongside the usual line/word/byte counts.
type Composition struct {
	api plugin.EditorAPI
}

// New creates a new instance of the Composition plugin.
func New() plugin.Plugin {
	return &Composition{}
}

// Name returns the unique name of the plugin.
func (p *Composition) Name() string {
	return "composition"
}

// Initialize registers the :composition command and its :wc shorthand.
func (p *Composition) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if err := api.RegisterCommand("composition", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'composition' command: %w", err)
	}
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Composition) Shutdown() error {
	return nil
}

// executeWordCount is the function called when the :wc command runs.
func (p *Composition) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("composition plugin not initialized with API")
	}

	bufferBytes := p.api.GetBufferBytes()
	lineCount := p.api.GetBufferLineCount()
	byteCount := len(bufferBytes)
	wordCount := len(bytes.Fields(bufferBytes))

	stats := p.api.GetSourceStats()
	if stats.TotalRunes > 0 {
		p.api.SetStatusMessage("Lines: %d, Words: %d, Bytes: %d | typed %.0f%%, pasted %.0f%%",
			lineCount, wordCount, byteCount, stats.TypedPercent(), stats.PastedPercent())
	} else {
		p.api.SetStatusMessage("Lines: %d, Words: %d, Bytes: %d", lineCount, wordCount, byteCount)
	}
	return nil
}
