package document

// Interpolation is the tangent/easing behaviour between two waypoints.
type Interpolation int

const (
	InterpolationUndefined Interpolation = iota
	InterpolationConstant
	InterpolationLinear
	InterpolationHalt
	InterpolationTCB
	InterpolationClamped
	InterpolationManual
)

var interpolationNames = map[Interpolation]string{
	InterpolationUndefined: "undefined",
	InterpolationConstant:  "constant",
	InterpolationLinear:    "linear",
	InterpolationHalt:      "halt",
	InterpolationTCB:       "auto",
	InterpolationClamped:   "clamped",
	InterpolationManual:    "manual",
}

func (i Interpolation) String() string {
	if name, ok := interpolationNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseInterpolation maps an attribute value to an Interpolation.
// The empty string is not accepted here; callers treat an absent
// attribute as InterpolationUndefined themselves.
func ParseInterpolation(s string) (Interpolation, bool) {
	switch s {
	case "halt":
		return InterpolationHalt, true
	case "constant":
		return InterpolationConstant, true
	case "linear":
		return InterpolationLinear, true
	case "manual":
		return InterpolationManual, true
	case "auto":
		return InterpolationTCB, true
	case "clamped":
		return InterpolationClamped, true
	}
	return InterpolationUndefined, false
}

// MarshalText renders the interpolation by name so summaries stay readable.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
