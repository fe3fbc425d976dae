package timecode

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fps      float64
		expected float64
		warns    bool
	}{
		{"bot", "bot", 24, -32767 * 512, false},
		{"sotNoFPS", "SOT", 0, -32767 * 512, false},
		{"eot", "eot", 30, 32767 * 512, false},
		{"seconds", "5s", 0, 5, false},
		{"minutesSeconds", "2m30s", 0, 150, false},
		{"hours", "1h", 0, 3600, false},
		{"framesWithFPS", "10f", 25, 0.4, false},
		{"framesWithoutFPS", "10f", 0, 0, true},
		{"mixedUnits", "1h 2m 3s 12f", 24, 3723.5, false},
		{"fractionalSeconds", "1.5s", 0, 1.5, false},
		{"negative", "-2s", 0, -2, false},
		{"upperCase", "2M", 0, 120, false},
		{"bareWithFPS", "48", 24, 2, true},
		{"bareWithoutFPS", "3", 0, 3, true},
		{"bareZero", "0", 24, 0, false},
		{"colon", "00:01:30", 0, 90, false},
		{"colonFrames", "0:0:1:12", 24, 1.5, false},
		{"colonFractionAsFrames", "00:01:30.500", 24, 90 + 500.0/24, false},
		{"colonFramesNoFPS", "00:01:30.500", 0, 90, true},
		{"colonTooShort", "1:30", 0, 0, true},
		{"unknownUnit", "3x", 0, 3, true},
		{"spaceBeforeUnit", "5 s", 0, 5, false},
		{"spacesBeforeUnits", "1h 30 m\t4 f", 24, 5400 + 4.0/24, false},
		{"noNumber", "s", 0, 0, false},
		{"empty", "", 24, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := Parse(tt.text, tt.fps)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Parse(%q, %v) = %v, expected %v", tt.text, tt.fps, got, tt.expected)
			}
			if (len(warnings) > 0) != tt.warns {
				t.Errorf("Parse(%q, %v) warnings = %v, expected warnings=%v", tt.text, tt.fps, warnings, tt.warns)
			}
		})
	}
}

func TestParseSentinelsIgnoreFPS(t *testing.T) {
	for _, fps := range []float64{0, 12, 24, 60} {
		if v, _ := Parse("bot", fps); v != Begin {
			t.Errorf("bot at fps %v = %v, expected %v", fps, v, Begin)
		}
		if v, _ := Parse("sot", fps); v != Begin {
			t.Errorf("sot at fps %v = %v, expected %v", fps, v, Begin)
		}
		if v, _ := Parse("eot", fps); v != End {
			t.Errorf("eot at fps %v = %v, expected %v", fps, v, End)
		}
	}
}
