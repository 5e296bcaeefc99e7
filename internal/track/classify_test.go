// internal/track/classify_test.go
package track

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		runes  int
		want   SourceKind
	}{
		{"single keystroke", OriginKeyboard, 1, SourceTyped},
		{"ime commit", OriginKeyboard, 3, SourceTyped},
		{"paste multi", OriginClipboard, 42, SourcePasted},
		{"paste single char", OriginClipboard, 1, SourcePasted},
		{"file load", OriginLoad, 100, SourceUnknown},
		{"unknown origin short", OriginReplay, 1, SourceTyped},
		{"unknown origin long", OriginReplay, 5, SourcePasted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.origin, tt.runes); got != tt.want {
				t.Errorf("Classify(%v, %d) = %v, want %v", tt.origin, tt.runes, got, tt.want)
			}
		})
	}
}

func TestParseSourceKind(t *testing.T) {
	tests := []struct {
		in      string
		want    SourceKind
		wantErr bool
	}{
		{"typed", SourceTyped, false},
		{"manual", SourceTyped, false},
		{"pasted", SourcePasted, false},
		{"unknown", SourceUnknown, false},
		{"", SourceUnknown, false},
		{"bogus", SourceUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseSourceKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSourceKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSourceKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSourceKindRoundTrip(t *testing.T) {
	for _, k := range []SourceKind{SourceTyped, SourcePasted, SourceUnknown} {
		got, err := ParseSourceKind(k.String())
		if err != nil {
			t.Errorf("ParseSourceKind(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("round trip %v -> %q -> %v", k, k.String(), got)
		}
	}
}
