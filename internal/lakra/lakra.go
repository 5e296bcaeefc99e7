// Package lakra reads and writes the .lakra container format: the
// document text followed by a delimited JSON metadata envelope holding
// the provenance segments. Plain files are supported through a sidecar
// .meta file.
package lakra

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/track"
)

const (
	// Extension is the container file extension.
	Extension = ".lakra"
	// SidecarExtension is appended to a plain file's path to hold its
	// metadata separately.
	SidecarExtension = ".meta"

	metaStartDelim = "<!-- GHOSTKEY_METADATA_START -->"
	metaEndDelim   = "<!-- GHOSTKEY_METADATA_END -->"
)

// IsLakraFile reports whether the path names a container file.
func IsLakraFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// SuggestFileName returns the path a plain file would have as a
// container file.
func SuggestFileName(path string) string {
	if IsLakraFile(path) {
		return path
	}
	return path + Extension
}

// SidecarPath returns the sidecar metadata path for a plain file.
func SidecarPath(path string) string {
	return path + SidecarExtension
}

// Load reads a document and its provenance metadata. For a .lakra
// path the metadata is extracted from the container; for a plain path
// the sidecar file is consulted if present. Missing or damaged
// metadata is not an error: the text loads with nil segments.
func Load(path string) (text []byte, segs []track.Segment, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if IsLakraFile(path) {
		text, rawMeta := splitContainer(raw)
		if rawMeta == "" {
			logger.Warnf("Container %s has no metadata block, treating as plain text", path)
			return text, nil, nil
		}
		segs, merr := meta.Deserialize(rawMeta)
		if merr != nil {
			logger.Warnf("Container %s has unreadable metadata: %v", path, merr)
			return text, nil, nil
		}
		logger.DebugTagf("lakra", "Loaded %d segments from %s (metadata v%s)",
			len(segs), path, meta.FormatVersion(rawMeta))
		return text, segs, nil
	}

	// Plain file: look for a sidecar.
	if rawMeta, serr := os.ReadFile(SidecarPath(path)); serr == nil {
		if segs, merr := meta.Deserialize(string(rawMeta)); merr == nil {
			return raw, segs, nil
		} else {
			logger.Warnf("Sidecar for %s has unreadable metadata: %v", path, merr)
		}
	}
	return raw, nil, nil
}

// splitContainer separates the text body from the metadata block. The
// delimiter line and the newline preceding it belong to the container,
// not the document.
func splitContainer(raw []byte) (text []byte, rawMeta string) {
	idx := bytes.Index(raw, []byte(metaStartDelim))
	if idx < 0 {
		return raw, ""
	}
	text = raw[:idx]
	text = bytes.TrimSuffix(text, []byte("\n"))

	rest := raw[idx+len(metaStartDelim):]
	if end := bytes.Index(rest, []byte(metaEndDelim)); end >= 0 {
		rest = rest[:end]
	}
	return text, strings.TrimSpace(string(rest))
}

// Save writes a document and its segments. For a .lakra path the
// metadata is embedded in the container; a plain path gets the bare
// text plus a sidecar file (the sidecar is removed when there are no
// segments to record).
func Save(path string, text []byte, segs []track.Segment) error {
	if IsLakraFile(path) {
		encoded, err := meta.Serialize(segs)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		buf.Write(text)
		buf.WriteByte('\n')
		buf.WriteString(metaStartDelim)
		buf.WriteByte('\n')
		buf.WriteString(encoded)
		buf.WriteByte('\n')
		buf.WriteString(metaEndDelim)
		buf.WriteByte('\n')
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	if err := os.WriteFile(path, text, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	sidecar := SidecarPath(path)
	if len(segs) == 0 {
		if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
			logger.Warnf("Removing stale sidecar %s: %v", sidecar, err)
		}
		return nil
	}
	encoded, err := meta.Serialize(segs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(sidecar, []byte(encoded), 0644); err != nil {
		return fmt.Errorf("writing sidecar %s: %w", sidecar, err)
	}
	return nil
}

// ExportMetadata writes just the metadata envelope for a document to
// destPath.
func ExportMetadata(destPath string, segs []track.Segment) error {
	encoded, err := meta.Serialize(segs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destPath, []byte(encoded), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

// ImportMetadata reads a standalone metadata envelope.
func ImportMetadata(srcPath string) ([]track.Segment, error) {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", srcPath, err)
	}
	segs, err := meta.Deserialize(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", srcPath, err)
	}
	return segs, nil
}

// Backup copies the file to a timestamped sibling before a risky
// overwrite and returns the backup path. A missing source is not an
// error (nothing to back up).
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("creating backup %s: %w", backupPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copying to backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}
