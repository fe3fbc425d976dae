package loader

import (
	"math"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// valueParseFunc parses the body of one literal value element. The reader
// is positioned at the element's open tag, which tag describes.
type valueParseFunc func(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.Value, error)

// valueParsers maps literal value tag names to their parsers. Names absent
// from the table (bline_point, guid, width_point, dash_item, canvas, ...)
// are not literal values.
var valueParsers map[string]valueParseFunc

func init() {
	valueParsers = map[string]valueParseFunc{
		"real":           parseReal,
		"time":           parseTimeValue,
		"integer":        parseInteger,
		"angle":          parseAngle,
		"degrees":        parseAngle,
		"radians":        parseAngle,
		"rotations":      parseAngle,
		"string":         parseString,
		"vector":         parseVector,
		"color":          parseColor,
		"segment":        parseSegment,
		"gradient":       parseGradient,
		"bool":           parseBoolValue,
		"transformation": parseTransformation,
		"list":           parseList,
	}
}

// parseValue parses the element at the reader position as a literal value.
// ok is false, and nothing is consumed, when the element is not a literal
// value.
func (p *parser) parseValue(canvas *document.Canvas) (v document.Value, ok bool, err error) {
	tag, err := p.r.Peek()
	if err != nil {
		return nil, false, err
	}
	fn, ok := valueParsers[tag.Name]
	if !ok {
		return nil, false, nil
	}

	v, err = fn(p, tag, canvas)
	if err != nil {
		return nil, true, err
	}
	mods, err := readModifiers(tag)
	if err != nil {
		return nil, true, err
	}
	document.SetModifiers(v, mods)
	return v, true, nil
}

func readModifiers(tag tagreader.Tag) (document.Modifiers, error) {
	var mods document.Modifiers
	if s, ok := tag.Attr("static"); ok {
		static, err := parseBool(tag, "static", s)
		if err != nil {
			return mods, err
		}
		mods.Static = static
	}
	interp, err := interpolationAttr(tag, "interpolation")
	if err != nil {
		return mods, err
	}
	mods.Interpolation = interp
	return mods, nil
}

// readValueAttr consumes a self-closing element and returns its value
// attribute.
func (p *parser) readValueAttr(tag tagreader.Tag) (string, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return "", err
	}
	s, err := requireAttr(tag, "value")
	if err != nil {
		return "", err
	}
	if err := p.r.ExpectClose(tag.Name); err != nil {
		return "", err
	}
	return s, nil
}

func parseReal(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	s, err := p.readValueAttr(tag)
	if err != nil {
		return nil, err
	}
	v, err := parseFloat(tag, "value", s)
	if err != nil {
		return nil, err
	}
	return &document.Real{Value: v}, nil
}

func parseTimeValue(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.Value, error) {
	s, err := p.readValueAttr(tag)
	if err != nil {
		return nil, err
	}
	v, err := p.parseTime(canvas, tag, s)
	if err != nil {
		return nil, err
	}
	return &document.Time{Seconds: v}, nil
}

func parseInteger(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	s, err := p.readValueAttr(tag)
	if err != nil {
		return nil, err
	}
	v, err := parseInt(tag, "value", s)
	if err != nil {
		return nil, err
	}
	return &document.Integer{Value: v}, nil
}

// parseAngle reads every angle spelling as degrees, including radians and
// rotations.
func parseAngle(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	s, err := p.readValueAttr(tag)
	if err != nil {
		return nil, err
	}
	deg, err := parseFloat(tag, "value", s)
	if err != nil {
		return nil, err
	}
	return &document.Angle{Radians: deg * math.Pi / 180}, nil
}

func parseString(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	text, err := p.r.ReadText()
	if err != nil {
		return nil, err
	}
	if err := p.r.ExpectClose(tag.Name); err != nil {
		return nil, err
	}
	return &document.String{Value: text.Raw}, nil
}

func parseBoolValue(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	s, err := p.readValueAttr(tag)
	if err != nil {
		return nil, err
	}
	v, err := parseBool(tag, "value", s)
	if err != nil {
		return nil, err
	}
	return &document.Bool{Value: v}, nil
}

// readNumberElement consumes <name>number</name>.
func (p *parser) readNumberElement(name string) (float64, error) {
	tag, err := p.r.ExpectOpen(name)
	if err != nil {
		return 0, err
	}
	text, err := p.r.ReadText()
	if err != nil {
		return 0, err
	}
	if err := p.r.ExpectClose(name); err != nil {
		return 0, err
	}
	v, err := parseFloat(tag, "", text.Text)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// readComponents consumes an element whose children are bare numbers named
// by names, each given exactly once.
func (p *parser) readComponents(tag tagreader.Tag, names ...string) ([]float64, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	out := make([]float64, len(names))
	seen := make([]bool, len(names))
	err := p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		i, ok := index[child.Name]
		if !ok {
			return newError(KindUnexpectedElement, child, "not allowed inside <%s>", tag.Name)
		}
		if seen[i] {
			return newError(KindArity, child, "given more than once inside <%s>", tag.Name)
		}
		v, err := p.readNumberElement(child.Name)
		if err != nil {
			return err
		}
		out[i], seen[i] = v, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, ok := range seen {
		if !ok {
			return nil, newError(KindArity, tag, "missing component <%s>", names[i])
		}
	}
	return out, nil
}

func parseVector(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	c, err := p.readComponents(tag, "x", "y")
	if err != nil {
		return nil, err
	}
	return &document.Vector{X: c[0], Y: c[1]}, nil
}

func (p *parser) readRGBA(tag tagreader.Tag) (document.RGBA, error) {
	c, err := p.readComponents(tag, "r", "g", "b", "a")
	if err != nil {
		return document.RGBA{}, err
	}
	return document.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

func parseColor(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	rgba, err := p.readRGBA(tag)
	if err != nil {
		return nil, err
	}
	return &document.Color{RGBA: rgba}, nil
}

// readWrapped consumes <wrapper><value/></wrapper> and checks that the
// inner value is of kind want.
func (p *parser) readWrapped(wrapper tagreader.Tag, canvas *document.Canvas, want document.Kind) (document.Value, error) {
	if _, err := p.r.ExpectOpen(wrapper.Name); err != nil {
		return nil, err
	}
	var v document.Value
	err := p.r.ForEachChild(wrapper.Name, func(child tagreader.Tag) error {
		if v != nil {
			return newError(KindArity, child, "<%s> holds more than one value", wrapper.Name)
		}
		val, ok, err := p.parseValue(canvas)
		if err != nil {
			return err
		}
		if !ok {
			return newError(KindTypeMismatch, child, "expected a %s value inside <%s>", want, wrapper.Name)
		}
		if val.Kind() != want {
			return newError(KindTypeMismatch, child, "expected a %s value inside <%s>, found %s", want, wrapper.Name, val.Kind())
		}
		v = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, newError(KindArity, wrapper, "expected a %s value", want)
	}
	return v, nil
}

func parseSegment(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.Value, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	seg := &document.Segment{}
	points := map[string]*[2]float64{
		"p1": (*[2]float64)(&seg.P1),
		"t1": (*[2]float64)(&seg.T1),
		"p2": (*[2]float64)(&seg.P2),
		"t2": (*[2]float64)(&seg.T2),
	}
	seen := make(map[string]bool, len(points))
	err := p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		dst, ok := points[child.Name]
		if !ok {
			return newError(KindUnexpectedElement, child, "not allowed inside <segment>")
		}
		v, err := p.readWrapped(child, canvas, document.KindVector)
		if err != nil {
			return err
		}
		vec := v.(*document.Vector)
		*dst = [2]float64{vec.X, vec.Y}
		seen[child.Name] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"p1", "t1", "p2", "t2"} {
		if !seen[name] {
			return nil, newError(KindArity, tag, "missing control point <%s>", name)
		}
	}
	return seg, nil
}

// parseGradient keeps stops in document order.
func parseGradient(p *parser, tag tagreader.Tag, _ *document.Canvas) (document.Value, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	g := &document.Gradient{}
	err := p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		if child.Name != "color" {
			return newError(KindUnexpectedElement, child, "not allowed inside <gradient>")
		}
		s, err := requireAttr(child, "pos")
		if err != nil {
			return err
		}
		pos, err := parseFloat(child, "pos", s)
		if err != nil {
			return err
		}
		rgba, err := p.readRGBA(child)
		if err != nil {
			return err
		}
		g.Stops = append(g.Stops, document.GradientStop{Pos: pos, Color: rgba})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func parseTransformation(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.Value, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	t := &document.Transformation{Scale: [2]float64{1, 1}}
	err := p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		switch child.Name {
		case "offset", "scale":
			v, err := p.readWrapped(child, canvas, document.KindVector)
			if err != nil {
				return err
			}
			vec := v.(*document.Vector)
			if child.Name == "offset" {
				t.Offset = vec.Vec2()
			} else {
				t.Scale = vec.Vec2()
			}
		case "angle", "skew_angle":
			v, err := p.readWrapped(child, canvas, document.KindAngle)
			if err != nil {
				return err
			}
			rad := v.(*document.Angle).Radians
			if child.Name == "angle" {
				t.Angle = rad
			} else {
				t.SkewAngle = rad
			}
		default:
			return newError(KindUnexpectedElement, child, "not allowed inside <transformation>")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseList(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.Value, error) {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	l := &document.List{}
	err := p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		v, ok, err := p.parseValue(canvas)
		if err != nil {
			return err
		}
		if !ok {
			return newError(KindTypeMismatch, child, "list items must be literal values")
		}
		l.Items = append(l.Items, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
