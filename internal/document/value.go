package document

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Kind identifies the variant of a literal Value.
type Kind string

const (
	KindReal           Kind = "real"
	KindTime           Kind = "time"
	KindInteger        Kind = "integer"
	KindString         Kind = "string"
	KindVector         Kind = "vector"
	KindColor          Kind = "color"
	KindSegment        Kind = "segment"
	KindGradient       Kind = "gradient"
	KindBool           Kind = "bool"
	KindAngle          Kind = "angle"
	KindTransformation Kind = "transformation"
	KindList           Kind = "list"
	KindCanvas         Kind = "canvas"
)

var kinds = map[Kind]bool{
	KindReal: true, KindTime: true, KindInteger: true, KindString: true,
	KindVector: true, KindColor: true, KindSegment: true, KindGradient: true,
	KindBool: true, KindAngle: true, KindTransformation: true, KindList: true,
	KindCanvas: true,
}

// ParseKind reports whether s names a literal value kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, kinds[k]
}

// Modifiers are read from every literal value element after its body.
type Modifiers struct {
	Static        bool
	Interpolation Interpolation
}

func (m *Modifiers) modifiers() *Modifiers { return m }

// Value is a literal datum of one fixed type. The set of implementations
// is closed: Real, Time, Integer, String, Vector, Color, Segment, Gradient,
// Bool, Angle, Transformation, List and CanvasValue.
type Value interface {
	Kind() Kind
	modifiers() *Modifiers
}

// ModifiersOf returns the static flag and interpolation carried by v.
func ModifiersOf(v Value) Modifiers {
	return *v.modifiers()
}

// SetModifiers overwrites the static flag and interpolation of v.
func SetModifiers(v Value, m Modifiers) {
	*v.modifiers() = m
}

type Real struct {
	Modifiers
	Value float64
}

func (*Real) Kind() Kind { return KindReal }

// Time holds a time value in seconds.
type Time struct {
	Modifiers
	Seconds float64
}

func (*Time) Kind() Kind { return KindTime }

type Integer struct {
	Modifiers
	Value int
}

func (*Integer) Kind() Kind { return KindInteger }

type String struct {
	Modifiers
	Value string
}

func (*String) Kind() Kind { return KindString }

type Vector struct {
	Modifiers
	X, Y float64
}

func (*Vector) Kind() Kind { return KindVector }

// Vec2 returns the vector as an x/image point.
func (v *Vector) Vec2() f64.Vec2 { return f64.Vec2{v.X, v.Y} }

// RGBA is a straight (non-premultiplied) floating point color.
type RGBA struct {
	R, G, B, A float64
}

type Color struct {
	Modifiers
	RGBA
}

func (*Color) Kind() Kind { return KindColor }

// Segment is a cubic hermite segment: two points and their tangents.
type Segment struct {
	Modifiers
	P1, T1, P2, T2 f64.Vec2
}

func (*Segment) Kind() Kind { return KindSegment }

type GradientStop struct {
	Pos   float64
	Color RGBA
}

// Gradient keeps its stops in document order; they are not sorted by Pos.
type Gradient struct {
	Modifiers
	Stops []GradientStop
}

func (*Gradient) Kind() Kind { return KindGradient }

type Bool struct {
	Modifiers
	Value bool
}

func (*Bool) Kind() Kind { return KindBool }

// Angle is stored in radians.
type Angle struct {
	Modifiers
	Radians float64
}

func (*Angle) Kind() Kind { return KindAngle }

// Degrees converts the angle back to the unit it is authored in.
func (a *Angle) Degrees() float64 { return a.Radians * 180 / math.Pi }

type Transformation struct {
	Modifiers
	Offset    f64.Vec2
	Angle     float64
	SkewAngle float64
	Scale     f64.Vec2
}

func (*Transformation) Kind() Kind { return KindTransformation }

// Matrix composes scale, skew, rotation and offset, in that order, into a
// 2D affine matrix.
func (t *Transformation) Matrix() f64.Aff3 {
	sin, cos := math.Sincos(t.Angle)
	skewSin, skewCos := math.Sincos(t.Angle + t.SkewAngle)
	return f64.Aff3{
		cos * t.Scale[0], -skewSin * t.Scale[1], t.Offset[0],
		sin * t.Scale[0], skewCos * t.Scale[1], t.Offset[1],
	}
}

// List is an ordered sequence of literal values.
type List struct {
	Modifiers
	Items []Value
}

func (*List) Kind() Kind { return KindList }

// CanvasValue wraps an inline canvas used in value position.
type CanvasValue struct {
	Modifiers
	Canvas *Canvas
}

func (*CanvasValue) Kind() Kind { return KindCanvas }
