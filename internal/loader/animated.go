package loader

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// parseAnimated reads <animated type="T"> (or <hermite>) and its waypoints
// in document order. When T names a literal value kind every waypoint value
// must be of that kind.
func parseAnimated(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error) {
	typ, err := requireAttr(tag, "type")
	if err != nil {
		return nil, err
	}
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	want, typed := document.ParseKind(typ)

	node := &document.Animated{Type: typ}
	err = p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		if child.Name != "waypoint" {
			return newError(KindUnexpectedElement, child, "not allowed inside <%s>", tag.Name)
		}
		wp, err := p.parseWaypoint(child, canvas)
		if err != nil {
			return err
		}
		if typed && wp.Value.Kind() != want {
			return newError(KindTypeMismatch, child, "waypoint holds a %s value in a %s animation", wp.Value.Kind(), typ)
		}
		node.Waypoints = append(node.Waypoints, wp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) parseWaypoint(tag tagreader.Tag, canvas *document.Canvas) (document.Waypoint, error) {
	var wp document.Waypoint

	s, err := requireAttr(tag, "time")
	if err != nil {
		return wp, err
	}
	if wp.Time, err = p.parseTime(canvas, tag, s); err != nil {
		return wp, err
	}
	if wp.Before, err = interpolationAttr(tag, "before"); err != nil {
		return wp, err
	}
	if wp.After, err = interpolationAttr(tag, "after"); err != nil {
		return wp, err
	}
	for _, f := range []struct {
		attr string
		dst  *float64
	}{
		{"tension", &wp.Tension},
		{"continuity", &wp.Continuity},
		{"bias", &wp.Bias},
		{"temporal-tension", &wp.TemporalTension},
	} {
		s, ok := tag.Attr(f.attr)
		if !ok {
			continue
		}
		if *f.dst, err = parseFloat(tag, f.attr, s); err != nil {
			return wp, err
		}
	}

	if _, err := p.r.ExpectOpen("waypoint"); err != nil {
		return wp, err
	}
	node, err := ParseWrappedNode(p, tag, canvas)
	if err != nil {
		return wp, err
	}
	c, ok := node.(*document.Constant)
	if !ok {
		return wp, newError(KindTypeMismatch, tag, "waypoint must hold a constant value, found %s", node.NodeKind())
	}
	wp.Value = c.Value
	return wp, nil
}

// interpolationAttr reads an optional interpolation attribute. Absent means
// undefined.
func interpolationAttr(tag tagreader.Tag, attr string) (document.Interpolation, error) {
	s, ok := tag.Attr(attr)
	if !ok {
		return document.InterpolationUndefined, nil
	}
	interp, valid := document.ParseInterpolation(s)
	if !valid {
		return document.InterpolationUndefined, newAttrError(KindInvalidValue, tag, attr,
			"%q is not one of halt, constant, linear, manual, auto, clamped", s)
	}
	return interp, nil
}
