package loader

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// canvasChildFunc parses one child element of a canvas. The reader is
// positioned at the child's open tag and the function consumes the child.
type canvasChildFunc func(p *parser, tag tagreader.Tag, c *document.Canvas) error

var canvasChildren map[string]canvasChildFunc

func init() {
	canvasChildren = map[string]canvasChildFunc{
		"defs":     parseDefs,
		"bones":    skipBones,
		"keyframe": parseKeyframe,
		"meta":     parseMeta,
		"name":     parseCanvasText,
		"desc":     parseCanvasText,
		"author":   parseCanvasText,
		"layer":    parseLayerChild,
	}
}

// parseCanvas parses the canvas element at the reader position.
//
// With inline set, or without a parent, the result is an independent
// canvas; inline canvases keep parent only for definition lookups.
// Otherwise it is a child of parent keyed by its id attribute.
//
// Canvas guids are global; an empty guid counts as absent. A guid that is
// already registered makes the element an alias: it is skipped and the
// registered canvas returned, bound under its id when nested.
func (p *parser) parseCanvas(parent *document.Canvas, inline bool) (*document.Canvas, error) {
	tag, err := p.r.Peek()
	if err != nil {
		return nil, err
	}
	if tag.Name != "canvas" {
		return nil, newError(KindUnexpectedElement, tag, "expected <canvas>")
	}

	guid, _ := tag.Attr("guid")
	if guid != "" && p.reg.Exists(guid) {
		return p.aliasCanvas(parent, inline, tag, guid)
	}
	if guid == "" {
		guid = p.reg.Generate()
	}

	var c *document.Canvas
	kind := "root"
	switch {
	case inline:
		c = document.NewInline(parent)
		kind = "inline"
	case parent == nil:
		c = document.NewRoot()
		c.ID, _ = tag.Attr("id")
	default:
		id, err := requireAttr(tag, "id")
		if err != nil {
			return nil, err
		}
		if c, err = parent.NewChild(id); err != nil {
			return nil, newAttrError(KindDuplicateReference, tag, "id", "%v", err)
		}
		kind = "nested"
	}

	// Registered before the children so they can refer back to it.
	c.GUID = guid
	if err := p.reg.Set(guid, c); err != nil {
		return nil, p.registryError(tag, err)
	}
	if kind == "root" && p.rootGUID == "" {
		p.rootGUID = guid
	}

	if _, err := p.r.ExpectOpen("canvas"); err != nil {
		return nil, err
	}
	if err := p.readCanvasAttrs(tag, c); err != nil {
		return nil, err
	}

	err = p.r.ForEachChild("canvas", func(child tagreader.Tag) error {
		fn, ok := canvasChildren[child.Name]
		if !ok {
			return newError(KindUnexpectedElement, child, "not allowed inside <canvas>")
		}
		return fn(p, child, c)
	})
	if err != nil {
		return nil, err
	}

	p.metrics.CanvasParsed(kind)
	return c, nil
}

func (p *parser) aliasCanvas(parent *document.Canvas, inline bool, tag tagreader.Tag, guid string) (*document.Canvas, error) {
	obj, err := p.reg.Get(guid)
	if err != nil {
		return nil, p.registryError(tag, err)
	}
	c, ok := obj.(*document.Canvas)
	if !ok {
		return nil, newAttrError(KindTypeMismatch, tag, "guid", "reference names a %T, not a canvas", obj)
	}
	if err := p.r.Skip(); err != nil {
		return nil, err
	}
	if id, ok := tag.Attr("id"); ok && id != "" && parent != nil && !inline {
		if err := parent.AddAlias(id, c); err != nil {
			return nil, newAttrError(KindDuplicateReference, tag, "id", "%v", err)
		}
	}
	p.metrics.ReferenceResolved()
	return c, nil
}

// readCanvasAttrs reads the scalar attributes of a canvas. fps is read
// first because begin and end times depend on it.
func (p *parser) readCanvasAttrs(tag tagreader.Tag, c *document.Canvas) error {
	var err error
	c.Version, _ = tag.Attr("version")

	if s, ok := tag.Attr("fps"); ok {
		if c.FPS, err = parseFloat(tag, "fps", s); err != nil {
			return err
		}
		if c.FPS < 0 {
			return newAttrError(KindRange, tag, "fps", "must not be negative")
		}
	}

	for _, dim := range []struct {
		attr string
		dst  *int
	}{
		{"width", &c.Width},
		{"height", &c.Height},
	} {
		s, ok := tag.Attr(dim.attr)
		if !ok {
			continue
		}
		v, err := parseInt(tag, dim.attr, s)
		if err != nil {
			return err
		}
		if v < 1 {
			return newAttrError(KindRange, tag, dim.attr, "must be at least 1, got %d", v)
		}
		*dim.dst = v
	}

	for _, res := range []struct {
		attr string
		dst  *float64
	}{
		{"xres", &c.XRes},
		{"yres", &c.YRes},
	} {
		if s, ok := tag.Attr(res.attr); ok {
			if *res.dst, err = parseFloat(tag, res.attr, s); err != nil {
				return err
			}
		}
	}

	begin, ok := tag.Attr("begin-time")
	if !ok {
		begin, ok = tag.Attr("start-time")
	}
	if ok {
		if c.BeginTime, err = p.parseTime(c, tag, begin); err != nil {
			return err
		}
	}
	if s, ok := tag.Attr("end-time"); ok {
		if c.EndTime, err = p.parseTime(c, tag, s); err != nil {
			return err
		}
	}

	if s, ok := tag.Attr("antialias"); ok {
		if c.Antialias, err = parseInt(tag, "antialias", s); err != nil {
			return err
		}
	}

	if s, ok := tag.Attr("view-box"); ok {
		box, err := parseFloats(tag, "view-box", s, 4)
		if err != nil {
			return err
		}
		c.TopLeft = [2]float64{box[0], box[1]}
		c.BottomRight = [2]float64{box[2], box[3]}
	}
	if s, ok := tag.Attr("bgcolor"); ok {
		rgba, err := parseFloats(tag, "bgcolor", s, 4)
		if err != nil {
			return err
		}
		c.BGColor = document.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	}
	if s, ok := tag.Attr("focus"); ok {
		focus, err := parseFloats(tag, "focus", s, 2)
		if err != nil {
			return err
		}
		c.Focus = [2]float64{focus[0], focus[1]}
	}
	return nil
}

func parseDefs(p *parser, tag tagreader.Tag, c *document.Canvas) error {
	if c.Inline {
		return newError(KindUnexpectedElement, tag, "inline canvases cannot carry definitions")
	}
	if _, err := p.r.ExpectOpen("defs"); err != nil {
		return err
	}
	return p.r.ForEachChild("defs", func(child tagreader.Tag) error {
		if child.Name == "canvas" {
			_, err := p.parseCanvas(c, false)
			return err
		}
		_, err := p.parseValueNode(c)
		return err
	})
}

func skipBones(p *parser, tag tagreader.Tag, _ *document.Canvas) error {
	if err := p.Warn(CodeUnsupportedElement, tag, "bones are not supported, skipping"); err != nil {
		return err
	}
	return p.r.Skip()
}

func parseCanvasText(p *parser, tag tagreader.Tag, c *document.Canvas) error {
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return err
	}
	text, err := p.r.ReadText()
	if err != nil {
		return err
	}
	if err := p.r.ExpectClose(tag.Name); err != nil {
		return err
	}
	switch tag.Name {
	case "name":
		c.Name = text.Raw
	case "desc":
		c.Desc = text.Raw
	case "author":
		c.Author = text.Raw
	}
	return nil
}

func parseLayerChild(p *parser, _ tagreader.Tag, c *document.Canvas) error {
	layer, err := p.opts.Layers.ParseLayer(p, c)
	if err != nil {
		return err
	}
	c.Layers = append(c.Layers, layer)
	return nil
}
