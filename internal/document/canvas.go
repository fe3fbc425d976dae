package document

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// Keyframe marks a named instant on a canvas time line.
type Keyframe struct {
	Time   float64
	Active bool
	Desc   string
}

// Canvas is a drawing surface. A canvas is a root (no parent, not inline),
// a nested child of another canvas (has a parent and an ID), or inline
// (embedded in value position, no identity of its own).
type Canvas struct {
	GUID    string
	ID      string
	Version string

	// Width and Height are 0 when the attribute was not given.
	Width, Height int
	XRes, YRes    float64
	FPS           float64
	BeginTime     float64
	EndTime       float64
	Antialias     int

	TopLeft     f64.Vec2
	BottomRight f64.Vec2
	BGColor     RGBA
	Focus       f64.Vec2

	Name   string
	Desc   string
	Author string

	Keyframes []Keyframe
	Meta      map[string]string
	Layers    []*Layer

	Parent *Canvas
	Inline bool

	defs       map[string]ValueNode
	defOrder   []string
	children   map[string]*Canvas
	childOrder []string
	aliases    map[string]*Canvas
	metaOrder  []string

	// outer is the canvas an inline canvas is embedded in. It is used for
	// definition lookups only and does not imply ownership.
	outer *Canvas
}

// NewRoot creates an independent root canvas.
func NewRoot() *Canvas {
	return &Canvas{
		Meta:     make(map[string]string),
		defs:     make(map[string]ValueNode),
		children: make(map[string]*Canvas),
	}
}

// NewInline creates an inline canvas embedded in outer. outer may be nil.
func NewInline(outer *Canvas) *Canvas {
	c := NewRoot()
	c.Inline = true
	c.outer = outer
	return c
}

// NewChild creates a nested canvas owned by c under id.
func (c *Canvas) NewChild(id string) (*Canvas, error) {
	if id == "" {
		return nil, fmt.Errorf("nested canvas requires an id")
	}
	if _, exists := c.Child(id); exists {
		return nil, fmt.Errorf("canvas %q already has a child canvas %q", c.ID, id)
	}
	child := NewRoot()
	child.ID = id
	child.Parent = c
	c.children[id] = child
	c.childOrder = append(c.childOrder, id)
	return child, nil
}

// IsRoot reports whether c is neither nested nor inline.
func (c *Canvas) IsRoot() bool {
	return c.Parent == nil && !c.Inline
}

// Root walks parent links up to the owning root canvas. Inline canvases
// are their own root.
func (c *Canvas) Root() *Canvas {
	root := c
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Outer returns the canvas an inline canvas is embedded in.
func (c *Canvas) Outer() *Canvas { return c.outer }

// AddDef registers node under a local id. Registering the same node twice
// is a no-op; a different node under an existing id is an error.
func (c *Canvas) AddDef(id string, node ValueNode) error {
	if existing, ok := c.defs[id]; ok {
		if existing == node {
			return nil
		}
		return fmt.Errorf("duplicate definition id %q", id)
	}
	c.defs[id] = node
	c.defOrder = append(c.defOrder, id)
	return nil
}

// Def returns the value node defined directly on c under id.
func (c *Canvas) Def(id string) (ValueNode, bool) {
	node, ok := c.defs[id]
	return node, ok
}

// DefIDs returns the local definition ids in document order.
func (c *Canvas) DefIDs() []string {
	return append([]string(nil), c.defOrder...)
}

// Lookup resolves id against c, then its parents, then, for inline
// canvases, the canvas they are embedded in.
func (c *Canvas) Lookup(id string) (ValueNode, bool) {
	for cur := c; cur != nil; {
		if node, ok := cur.defs[id]; ok {
			return node, true
		}
		if cur.Parent != nil {
			cur = cur.Parent
		} else {
			cur = cur.outer
		}
	}
	return nil, false
}

// AddAlias binds id to a canvas that is owned elsewhere. The target is
// reachable through Child but is not listed by Children.
func (c *Canvas) AddAlias(id string, target *Canvas) error {
	if id == "" {
		return fmt.Errorf("canvas alias requires an id")
	}
	if existing, ok := c.Child(id); ok {
		if existing == target {
			return nil
		}
		return fmt.Errorf("canvas %q already has a child canvas %q", c.ID, id)
	}
	if c.aliases == nil {
		c.aliases = make(map[string]*Canvas)
	}
	c.aliases[id] = target
	return nil
}

// Child returns the nested canvas registered under id, or the canvas an
// alias id is bound to.
func (c *Canvas) Child(id string) (*Canvas, bool) {
	if child, ok := c.children[id]; ok {
		return child, true
	}
	child, ok := c.aliases[id]
	return child, ok
}

// Children returns nested canvases in document order.
func (c *Canvas) Children() []*Canvas {
	out := make([]*Canvas, 0, len(c.childOrder))
	for _, id := range c.childOrder {
		out = append(out, c.children[id])
	}
	return out
}

// SetMeta stores a metadata entry, keeping first-seen key order.
func (c *Canvas) SetMeta(key, value string) {
	if _, ok := c.Meta[key]; !ok {
		c.metaOrder = append(c.metaOrder, key)
	}
	c.Meta[key] = value
}

// MetaKeys returns metadata keys in document order.
func (c *Canvas) MetaKeys() []string {
	return append([]string(nil), c.metaOrder...)
}
