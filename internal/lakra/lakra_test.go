// internal/lakra/lakra_test.go
package lakra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ghostkey/ghostkey/internal/track"
)

func sampleSegments() []track.Segment {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []track.Segment{
		{Start: 0, End: 6, Source: track.SourceTyped, Timestamp: ts},
		{Start: 6, End: 11, Source: track.SourcePasted, Timestamp: ts},
	}
}

func TestIsLakraFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"essay.lakra", true},
		{"essay.LAKRA", true},
		{"essay.txt", false},
		{"essay", false},
		{"dir.lakra/file.txt", false},
	}
	for _, tt := range tests {
		if got := IsLakraFile(tt.path); got != tt.want {
			t.Errorf("IsLakraFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSuggestFileName(t *testing.T) {
	if got := SuggestFileName("notes.txt"); got != "notes.txt.lakra" {
		t.Errorf("SuggestFileName = %q", got)
	}
	if got := SuggestFileName("notes.lakra"); got != "notes.lakra" {
		t.Errorf("SuggestFileName on container = %q", got)
	}
}

func TestContainerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.lakra")
	text := []byte("hello\nworld")

	if err := Save(path, text, sampleSegments()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(raw), metaStartDelim) || !strings.Contains(string(raw), metaEndDelim) {
		t.Fatalf("container missing delimiters:\n%s", raw)
	}

	gotText, gotSegs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(gotText) != string(text) {
		t.Errorf("text = %q, want %q", gotText, text)
	}
	if len(gotSegs) != 2 || gotSegs[0].Source != track.SourceTyped || gotSegs[1].End != 11 {
		t.Errorf("segments = %+v", gotSegs)
	}
}

func TestLoadContainerWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.lakra")
	if err := os.WriteFile(path, []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}
	text, segs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(text) != "just text" || segs != nil {
		t.Errorf("got text=%q segs=%+v", text, segs)
	}
}

func TestLoadContainerWithDamagedMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "damaged.lakra")
	content := "body\n" + metaStartDelim + "\n{{{not json\n" + metaEndDelim + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	text, segs, err := Load(path)
	if err != nil {
		t.Fatalf("Load should tolerate damaged metadata: %v", err)
	}
	if string(text) != "body" {
		t.Errorf("text = %q, want body", text)
	}
	if segs != nil {
		t.Errorf("segments = %+v, want nil", segs)
	}
}

func TestPlainFileSidecarRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	text := []byte("plain notes")

	if err := Save(path, text, sampleSegments()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(SidecarPath(path)); err != nil {
		t.Fatalf("sidecar missing: %v", err)
	}

	gotText, gotSegs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(gotText) != string(text) {
		t.Errorf("text = %q", gotText)
	}
	if len(gotSegs) != 2 {
		t.Errorf("segments = %+v", gotSegs)
	}

	// Saving with no segments removes the stale sidecar.
	if err := Save(path, text, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(SidecarPath(path)); !os.IsNotExist(err) {
		t.Error("stale sidecar should have been removed")
	}
}

func TestExportImportMetadata(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "doc.meta")
	if err := ExportMetadata(dest, sampleSegments()); err != nil {
		t.Fatalf("ExportMetadata failed: %v", err)
	}
	segs, err := ImportMetadata(dest)
	if err != nil {
		t.Fatalf("ImportMetadata failed: %v", err)
	}
	if len(segs) != 2 || segs[1].Source != track.SourcePasted {
		t.Errorf("segments = %+v", segs)
	}
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.lakra")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	backupPath, err := Backup(path)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(raw) != "original" {
		t.Errorf("backup content = %q", raw)
	}

	// Missing source is not an error.
	got, err := Backup(filepath.Join(dir, "missing.lakra"))
	if err != nil || got != "" {
		t.Errorf("Backup(missing) = %q, %v", got, err)
	}
}
