package loader

import (
	"errors"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/registry"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// nodeParseFunc parses a structural value node. The reader is positioned
// at the node's open tag.
type nodeParseFunc func(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error)

var nodeParsers map[string]nodeParseFunc

func init() {
	nodeParsers = map[string]nodeParseFunc{
		"animated":         parseAnimated,
		"hermite":          parseAnimated,
		"static_list":      parseStaticList,
		"dynamic_list":     parseDynamicList,
		"bline":            parseDynamicList,
		"wplist":           parseDynamicList,
		"dilist":           parseDynamicList,
		"weighted_average": parseDynamicList,
	}
}

// parseValueNode parses the element at the reader position as a value node
// owned by canvas.
//
// A non-empty guid is scoped to the document root. When the scoped id is already
// registered the element is skipped and the registered node returned, so
// every occurrence of a shared node yields the same object.
func (p *parser) parseValueNode(canvas *document.Canvas) (document.ValueNode, error) {
	tag, err := p.r.Peek()
	if err != nil {
		return nil, err
	}
	if tag.Name == "canvas" {
		return p.parseInlineCanvasNode(canvas)
	}

	var guid string
	if raw, _ := tag.Attr("guid"); raw != "" {
		guid = registry.ScopeTransform(raw, p.rootGUID)
		if p.reg.Exists(guid) {
			return p.aliasValueNode(canvas, tag, guid)
		}
	} else {
		guid = p.reg.Generate()
	}

	node, err := p.parseNodeBody(tag, canvas)
	if err != nil {
		return nil, err
	}

	info := node.Info()
	info.GUID = guid
	if id, ok := tag.Attr("id"); ok && id != "" {
		info.ID = id
		if err := canvas.AddDef(id, node); err != nil {
			return nil, newAttrError(KindDuplicateReference, tag, "id", "%v", err)
		}
	}
	if err := p.reg.Set(guid, node); err != nil {
		return nil, p.registryError(tag, err)
	}
	p.metrics.ValueNodeParsed(string(node.NodeKind()))
	return node, nil
}

func (p *parser) aliasValueNode(canvas *document.Canvas, tag tagreader.Tag, guid string) (document.ValueNode, error) {
	obj, err := p.reg.Get(guid)
	if err != nil {
		return nil, p.registryError(tag, err)
	}
	node, ok := obj.(document.ValueNode)
	if !ok {
		return nil, newAttrError(KindTypeMismatch, tag, "guid", "reference names a %T, not a value node", obj)
	}
	if err := p.r.Skip(); err != nil {
		return nil, err
	}
	if id, ok := tag.Attr("id"); ok && id != "" {
		if err := canvas.AddDef(id, node); err != nil {
			return nil, newAttrError(KindDuplicateReference, tag, "id", "%v", err)
		}
	}
	p.metrics.ReferenceResolved()
	return node, nil
}

// parseNodeBody tries a literal value first, then the structural node
// kinds, then the linkable parser.
func (p *parser) parseNodeBody(tag tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error) {
	v, ok, err := p.parseValue(canvas)
	if err != nil {
		return nil, err
	}
	if ok {
		return &document.Constant{Value: v}, nil
	}

	if fn, ok := nodeParsers[tag.Name]; ok {
		return fn(p, tag, canvas)
	}

	node, err := p.opts.Linkables.TryParseLinkable(p, canvas)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}
	return nil, newError(KindUnexpectedElement, tag, "not a value or value node")
}

// parseInlineCanvasNode wraps an inline canvas as a constant canvas value.
// The node gets a fresh reference id and is never bound to a local id.
func (p *parser) parseInlineCanvasNode(canvas *document.Canvas) (document.ValueNode, error) {
	tag, err := p.r.Peek()
	if err != nil {
		return nil, err
	}
	c, err := p.parseCanvas(canvas, true)
	if err != nil {
		return nil, err
	}
	node := &document.Constant{Value: &document.CanvasValue{Canvas: c}}
	node.GUID = p.reg.Generate()
	if err := p.reg.Set(node.GUID, node); err != nil {
		return nil, p.registryError(tag, err)
	}
	p.metrics.ValueNodeParsed(string(node.NodeKind()))
	return node, nil
}

// ParseWrappedNode reads the value node held by a wrapper element
// (waypoint, list entry, link, param): either a use=":id" attribute on the
// wrapper or exactly one child. The wrapper's open tag must already be
// consumed; its close tag is consumed here.
func ParseWrappedNode(ctx Context, wrapper tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error) {
	var node document.ValueNode
	if ref, ok := wrapper.Attr("use"); ok {
		resolved, err := ctx.ResolveUse(canvas, wrapper, ref)
		if err != nil {
			return nil, err
		}
		node = resolved
	}

	err := ctx.Reader().ForEachChild(wrapper.Name, func(child tagreader.Tag) error {
		if node != nil {
			return newError(KindArity, child, "<%s> holds more than one value node", wrapper.Name)
		}
		n, err := ctx.ParseValueNode(canvas)
		if err != nil {
			return err
		}
		node = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, newError(KindArity, wrapper, "expected a value node or a use reference")
	}
	return node, nil
}

func (p *parser) registryError(tag tagreader.Tag, err error) error {
	kind := KindUnresolvedReference
	msg := err.Error()
	if errors.Is(err, registry.ErrDuplicate) {
		kind = KindDuplicateReference
		msg = "reference id is already bound to another object"
	}
	e := newAttrError(kind, tag, "guid", "%s", msg)
	e.Err = err
	return e
}
