package loader

import (
	"strings"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// linkableKinds are the linkable node names known to DefaultLinkableParser.
var linkableKinds = []string{
	"add", "subtract", "scale", "composite", "radial_composite", "range",
	"exp", "reference", "sine", "cos", "atan2", "dot_product", "vectorlength",
	"vectorangle", "vectorx", "vectory", "timeloop", "timedswap", "switch",
	"blinecalcvertex", "blinecalctangent", "blinecalcwidth", "blinereversetangent",
	"stripes", "twotone", "repeat_gradient", "linear", "random", "greyed",
	"bone_link", "segcalcvertex", "segcalctangent", "step",
	"logarithm", "pow", "reciprocal", "compare", "not", "and", "or", "join",
	"anglestring", "intstring", "realstring", "timestring", "duplicate",
	"average", "bline_point", "width_point", "dash_item", "cross_product",
	"power",
}

// DefaultLinkableParser parses linkable nodes generically: every child
// element is a link named by its tag holding one value node, and every
// attribute whose value starts with ':' is a link to a definition.
type DefaultLinkableParser struct {
	kinds map[string]bool
}

// NewDefaultLinkableParser returns a parser for the built-in linkable kinds
// plus extra.
func NewDefaultLinkableParser(extra ...string) *DefaultLinkableParser {
	lp := &DefaultLinkableParser{kinds: make(map[string]bool, len(linkableKinds)+len(extra))}
	for _, k := range linkableKinds {
		lp.kinds[k] = true
	}
	for _, k := range extra {
		lp.kinds[k] = true
	}
	return lp
}

func (lp *DefaultLinkableParser) known(name string) bool {
	return lp.kinds[name]
}

func (lp *DefaultLinkableParser) TryParseLinkable(ctx Context, canvas *document.Canvas) (document.ValueNode, error) {
	r := ctx.Reader()
	tag, err := r.Peek()
	if err != nil {
		return nil, err
	}
	if !lp.known(tag.Name) {
		return nil, nil
	}

	typ, _ := tag.Attr("type")
	node := &document.Linkable{Name: tag.Name, Type: typ}
	seen := make(map[string]bool)
	add := func(at tagreader.Tag, name string, n document.ValueNode) error {
		if seen[name] {
			return newError(KindArity, at, "link %q given more than once", name)
		}
		seen[name] = true
		node.Links = append(node.Links, document.Link{Name: name, Node: n})
		return nil
	}

	for _, a := range tag.Attrs {
		name := a.Name.Local
		switch name {
		case "type", "guid", "id":
			continue
		}
		if !strings.HasPrefix(a.Value, ":") {
			continue
		}
		n, err := ctx.ResolveUse(canvas, tag, a.Value)
		if err != nil {
			return nil, err
		}
		if err := add(tag, name, n); err != nil {
			return nil, err
		}
	}

	if _, err := r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}
	err = r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		if _, err := r.ExpectOpen(child.Name); err != nil {
			return err
		}
		n, err := ParseWrappedNode(ctx, child, canvas)
		if err != nil {
			return err
		}
		return add(child, child.Name, n)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
