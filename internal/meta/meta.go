// Package meta serializes provenance segments to and from the JSON
// metadata envelope embedded in .lakra files and sidecar .meta files.
package meta

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/track"
)

// Version is the metadata format version written by this build.
const Version = "1.0"

// Serialize encodes the segment list as a compact JSON envelope:
//
//	{"ghostkey_metadata":{"version":...,"created":...,"data":{"version":...,"ranges":[...]}}}
func Serialize(segs []track.Segment) (string, error) {
	out := "{}"
	var err error
	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("ghostkey_metadata.version", Version)
	set("ghostkey_metadata.created", time.Now().UTC().Format(time.RFC3339))
	set("ghostkey_metadata.data.version", Version)
	set("ghostkey_metadata.data.ranges", []interface{}{})

	for i, seg := range segs {
		base := fmt.Sprintf("ghostkey_metadata.data.ranges.%d", i)
		set(base+".start", seg.Start)
		set(base+".end", seg.End)
		set(base+".source", seg.Source.String())
		ts := seg.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		set(base+".timestamp", ts.UTC().Format(time.RFC3339))
	}
	if err != nil {
		return "", fmt.Errorf("building metadata json: %w", err)
	}
	return out, nil
}

// Deserialize parses a metadata envelope back into segments. It is
// tolerant of damage: a bare data object (no envelope) is accepted,
// and individual malformed ranges are skipped rather than failing the
// whole document. An error is returned only when no ranges array can
// be located at all.
func Deserialize(raw string) ([]track.Segment, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("metadata is not valid json")
	}

	ranges := gjson.Get(raw, "ghostkey_metadata.data.ranges")
	if !ranges.Exists() {
		// Accept a bare data object or a bare ranges array.
		ranges = gjson.Get(raw, "data.ranges")
	}
	if !ranges.Exists() {
		ranges = gjson.Get(raw, "ranges")
	}
	if !ranges.Exists() || !ranges.IsArray() {
		return nil, fmt.Errorf("metadata has no ranges array")
	}

	var segs []track.Segment
	ranges.ForEach(func(_, r gjson.Result) bool {
		start := r.Get("start")
		end := r.Get("end")
		source := r.Get("source")
		if !start.Exists() || !end.Exists() || !source.Exists() {
			logger.DebugTagf("meta", "Skipping range with missing fields: %s", r.Raw)
			return true
		}
		kind, kerr := track.ParseSourceKind(source.String())
		if kerr != nil {
			logger.DebugTagf("meta", "Skipping range with bad source: %s", r.Raw)
			return true
		}
		seg := track.Segment{
			Start:  int(start.Int()),
			End:    int(end.Int()),
			Source: kind,
		}
		if seg.Start < 0 || seg.End <= seg.Start {
			logger.DebugTagf("meta", "Skipping degenerate range [%d,%d)", seg.Start, seg.End)
			return true
		}
		if ts := r.Get("timestamp"); ts.Exists() {
			if parsed, perr := time.Parse(time.RFC3339, ts.String()); perr == nil {
				seg.Timestamp = parsed
			}
		}
		segs = append(segs, seg)
		return true
	})
	return segs, nil
}

// FormatVersion extracts the envelope's format version, or "" when
// absent.
func FormatVersion(raw string) string {
	if v := gjson.Get(raw, "ghostkey_metadata.version"); v.Exists() {
		return v.String()
	}
	return gjson.Get(raw, "version").String()
}
