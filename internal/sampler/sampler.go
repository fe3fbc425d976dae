// Package sampler evaluates animated value nodes at a point in time.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/canvasdoc/internal/document"
)

var (
	ErrNoWaypoints = errors.New("animated node has no waypoints")
	ErrUnsupported = errors.New("value kind cannot be sampled")
)

// Sample calculates the value of a at time t by interpolating between the
// surrounding waypoints. Waypoints are taken in time order; before the
// first and after the last one the nearest value is held.
func Sample(a *document.Animated, t float64) (document.Value, error) {
	if len(a.Waypoints) == 0 {
		return nil, ErrNoWaypoints
	}

	wps := make([]document.Waypoint, len(a.Waypoints))
	copy(wps, a.Waypoints)
	sort.SliceStable(wps, func(i, j int) bool { return wps[i].Time < wps[j].Time })

	kind := wps[0].Value.Kind()
	for _, wp := range wps[1:] {
		if wp.Value.Kind() != kind {
			return nil, fmt.Errorf("waypoints mix %s and %s values", kind, wp.Value.Kind())
		}
	}

	// If before first waypoint, use first waypoint
	if t <= wps[0].Time {
		return blend(wps[0].Value, wps[0].Value, 0)
	}
	// If after last waypoint, use last waypoint
	last := wps[len(wps)-1]
	if t >= last.Time {
		return blend(last.Value, last.Value, 0)
	}

	// Find surrounding waypoints
	var prev, next document.Waypoint
	for i := 0; i < len(wps)-1; i++ {
		if t >= wps[i].Time && t < wps[i+1].Time {
			prev, next = wps[i], wps[i+1]
			break
		}
	}

	delta := next.Time - prev.Time
	if delta == 0 {
		return blend(next.Value, next.Value, 0)
	}
	f := (t - prev.Time) / delta

	switch {
	case prev.After == document.InterpolationConstant || next.Before == document.InterpolationConstant:
		f = 0
	case prev.After == document.InterpolationLinear && next.Before == document.InterpolationLinear:
	default:
		f = easeInOutCubic(f)
	}
	return blend(prev.Value, next.Value, f)
}

// blend returns a new value f of the way from a to b. a and b have the
// same kind.
func blend(a, b document.Value, f float64) (document.Value, error) {
	var out document.Value
	switch av := a.(type) {
	case *document.Real:
		out = &document.Real{Value: lerp(av.Value, b.(*document.Real).Value, f)}
	case *document.Time:
		out = &document.Time{Seconds: lerp(av.Seconds, b.(*document.Time).Seconds, f)}
	case *document.Angle:
		out = &document.Angle{Radians: lerp(av.Radians, b.(*document.Angle).Radians, f)}
	case *document.Integer:
		out = &document.Integer{Value: int(math.Round(lerp(float64(av.Value), float64(b.(*document.Integer).Value), f)))}
	case *document.Vector:
		bv := b.(*document.Vector)
		out = &document.Vector{X: lerp(av.X, bv.X, f), Y: lerp(av.Y, bv.Y, f)}
	case *document.Color:
		bc := b.(*document.Color)
		out = &document.Color{RGBA: document.RGBA{
			R: lerp(av.R, bc.R, f),
			G: lerp(av.G, bc.G, f),
			B: lerp(av.B, bc.B, f),
			A: lerp(av.A, bc.A, f),
		}}
	case *document.Bool:
		out = &document.Bool{Value: av.Value}
	case *document.String:
		out = &document.String{Value: av.Value}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, a.Kind())
	}
	document.SetModifiers(out, document.ModifiersOf(a))
	return out, nil
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic applies smooth easing function
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
