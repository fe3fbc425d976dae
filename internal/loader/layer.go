package loader

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// DefaultLayerParser reads any layer into the generic document.Layer form.
// Parameters keep document order.
type DefaultLayerParser struct{}

func (DefaultLayerParser) ParseLayer(ctx Context, canvas *document.Canvas) (*document.Layer, error) {
	r := ctx.Reader()
	tag, err := r.ExpectOpen("layer")
	if err != nil {
		return nil, err
	}

	typ, err := requireAttr(tag, "type")
	if err != nil {
		return nil, err
	}
	layer := &document.Layer{Type: typ, Active: true}
	layer.Desc, _ = tag.Attr("desc")
	layer.Version, _ = tag.Attr("version")
	if s, ok := tag.Attr("active"); ok {
		if layer.Active, err = parseBool(tag, "active", s); err != nil {
			return nil, err
		}
	}
	if s, ok := tag.Attr("exclude_from_rendering"); ok {
		if layer.ExcludeFromRendering, err = parseBool(tag, "exclude_from_rendering", s); err != nil {
			return nil, err
		}
	}

	err = r.ForEachChild("layer", func(child tagreader.Tag) error {
		if child.Name != "param" {
			return newError(KindUnexpectedElement, child, "not allowed inside <layer>")
		}
		name, err := requireAttr(child, "name")
		if err != nil {
			return err
		}
		if _, dup := layer.Param(name); dup {
			return newAttrError(KindArity, child, "name", "parameter %q given more than once", name)
		}
		if _, err := r.ExpectOpen("param"); err != nil {
			return err
		}
		node, err := ParseWrappedNode(ctx, child, canvas)
		if err != nil {
			return err
		}
		layer.Params = append(layer.Params, document.Param{Name: name, Node: node})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layer, nil
}
