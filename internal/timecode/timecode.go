// Package timecode parses the textual time expressions used throughout
// canvas documents into seconds.
//
// Accepted notations:
//
//	sot, bot, eot        start/end of time sentinels
//	1h 2m 3s 4f          unit-suffixed amounts, summed ("2m30s" = 150)
//	00:01:30, 0:1:30:12  H:M:S with an optional frame field
//	00:01:30.500         fractional seconds digits are read as a frame count
//	42                   frames if the frame rate is known, else seconds
//
// Parsing never fails. Malformed or ambiguous input is resolved the lenient
// way and reported through the returned warnings.
package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Begin is the value of the "sot"/"bot" sentinels.
	Begin = -32767 * 512.0
	// End is the value of the "eot" sentinel.
	End = 32767 * 512.0
)

var numberRun = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)`)

// Parse converts text to seconds. fps is the frame rate used for frame
// amounts; pass 0 when it is unknown.
func Parse(text string, fps float64) (float64, []string) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "sot", "bot":
		return Begin, nil
	case "eot":
		return End, nil
	}

	var (
		value    float64
		warnings []string
	)
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	pos := 0
	for pos < len(s) {
		amount := 0.0
		if m := numberRun.FindString(s[pos:]); m != "" {
			amount, _ = strconv.ParseFloat(strings.TrimSpace(m), 64)
			pos += len(m)
			// "5 s" is the same as "5s".
			for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
				pos++
			}
			if pos >= len(s) {
				switch {
				case fps > 0:
					if amount != 0 {
						warn("no unit provided in time code %q, assuming frames", text)
					}
					value += amount / fps
				default:
					if amount != 0 {
						warn("no unit provided in time code %q and frame rate is unknown, assuming seconds", text)
					}
					value += amount
				}
				return value, warnings
			}
		}

		switch c := s[pos]; c {
		case 'h':
			value += amount * 3600
		case 'm':
			value += amount * 60
		case 's':
			value += amount
		case 'f':
			if fps > 0 {
				value += amount / fps
			} else {
				warn("frames referenced in time code %q, but frame rate is unknown", text)
			}
		case ':':
			v, ws, ok := parseColon(s, fps)
			warnings = append(warnings, ws...)
			if !ok {
				warn("bad time format %q", text)
				return value, warnings
			}
			return v, warnings
		default:
			value += amount
			warn("unexpected character %q in time code %q, assuming seconds", c, text)
		}
		pos++
	}
	return value, warnings
}

// parseColon reads H:M:S[:F] or H:M:S.F. The digits after the decimal point
// of the seconds field are a frame count, not a fraction of a second.
func parseColon(s string, fps float64) (float64, []string, bool) {
	fields := strings.Split(s, ":")
	if len(fields) < 3 || len(fields) > 4 {
		return 0, nil, false
	}

	seconds := fields[2]
	frames := ""
	if i := strings.IndexByte(seconds, '.'); i >= 0 {
		frames = seconds[i+1:]
		seconds = seconds[:i]
	}
	if len(fields) == 4 {
		frames = fields[3]
	}

	var parts [3]float64
	for i, f := range []string{fields[0], fields[1], seconds} {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, nil, false
		}
		parts[i] = v
	}
	value := parts[0]*3600 + parts[1]*60 + parts[2]

	var warnings []string
	if frames != "" {
		n, err := strconv.ParseFloat(strings.TrimSpace(frames), 64)
		if err != nil {
			return 0, nil, false
		}
		if fps > 0 {
			value += n / fps
		} else if n != 0 {
			warnings = append(warnings, fmt.Sprintf("frames referenced in time code %q, but frame rate is unknown", s))
		}
	}
	return value, warnings, true
}
