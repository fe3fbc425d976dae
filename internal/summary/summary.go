// Package summary describes a loaded document as a YAML file: the canvas
// tree, its definitions, keyframes and layers.
package summary

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/loader"
)

// Version of the summary file layout.
const Version = "1.0"

// Summary represents a complete loaded document
type Summary struct {
	Version     string   `yaml:"version"`
	Source      string   `yaml:"source,omitempty"`
	Counts      Counts   `yaml:"counts"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
	Root        Canvas   `yaml:"root"`
}

// Counts are totals over the whole tree. Shared nodes count once.
type Counts struct {
	Canvases   int `yaml:"canvases"`
	ValueNodes int `yaml:"value_nodes"`
	Layers     int `yaml:"layers"`
	Keyframes  int `yaml:"keyframes"`
	References int `yaml:"references"`
}

// Canvas represents one canvas and its nested children
type Canvas struct {
	Kind      string            `yaml:"kind"` // root, nested or inline
	GUID      string            `yaml:"guid"`
	ID        string            `yaml:"id,omitempty"`
	Version   string            `yaml:"version,omitempty"`
	Name      string            `yaml:"name,omitempty"`
	Desc      string            `yaml:"desc,omitempty"`
	Author    string            `yaml:"author,omitempty"`
	Width     int               `yaml:"width,omitempty"`
	Height    int               `yaml:"height,omitempty"`
	FPS       float64           `yaml:"fps,omitempty"`
	BeginTime float64           `yaml:"begin_time"`
	EndTime   float64           `yaml:"end_time"`
	ViewBox   [4]float64        `yaml:"view_box,flow"`
	Keyframes []Keyframe        `yaml:"keyframes,omitempty"`
	Meta      map[string]string `yaml:"meta,omitempty"`
	Defs      []Def             `yaml:"defs,omitempty"`
	Layers    []Layer           `yaml:"layers,omitempty"`
	Children  []Canvas          `yaml:"children,omitempty"`
}

// Keyframe represents a named instant on the canvas time line
type Keyframe struct {
	Time   float64 `yaml:"time"`
	Active bool    `yaml:"active"`
	Desc   string  `yaml:"desc,omitempty"`
}

// Def is one local definition
type Def struct {
	ID   string `yaml:"id"`
	GUID string `yaml:"guid"`
	Node string `yaml:"node"`           // constant, animated, ...
	Type string `yaml:"type,omitempty"` // value kind or declared type
}

type Layer struct {
	Type   string   `yaml:"type"`
	Desc   string   `yaml:"desc,omitempty"`
	Active bool     `yaml:"active"`
	Params []string `yaml:"params,omitempty"`
	// Inline lists the canvases held by the layer's parameters.
	Inline []Canvas `yaml:"inline,omitempty"`
}

// Build summarizes a load result. source names the loaded file.
func Build(res *loader.Result, source string) *Summary {
	b := &builder{seen: make(map[document.ValueNode]bool)}
	s := &Summary{
		Version: Version,
		Source:  source,
		Root:    b.canvas(res.Canvas, "root"),
	}
	for _, d := range res.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, d.String())
	}
	b.counts.References = res.References
	s.Counts = b.counts
	return s
}

type builder struct {
	seen   map[document.ValueNode]bool
	counts Counts
}

func (b *builder) canvas(c *document.Canvas, kind string) Canvas {
	b.counts.Canvases++
	b.counts.Keyframes += len(c.Keyframes)
	b.counts.Layers += len(c.Layers)

	out := Canvas{
		Kind:      kind,
		GUID:      c.GUID,
		ID:        c.ID,
		Version:   c.Version,
		Name:      c.Name,
		Desc:      c.Desc,
		Author:    c.Author,
		Width:     c.Width,
		Height:    c.Height,
		FPS:       c.FPS,
		BeginTime: c.BeginTime,
		EndTime:   c.EndTime,
		ViewBox:   [4]float64{c.TopLeft[0], c.TopLeft[1], c.BottomRight[0], c.BottomRight[1]},
	}
	if len(c.Meta) > 0 {
		out.Meta = c.Meta
	}
	for _, kf := range c.Keyframes {
		out.Keyframes = append(out.Keyframes, Keyframe{Time: kf.Time, Active: kf.Active, Desc: kf.Desc})
	}

	for _, id := range c.DefIDs() {
		node, _ := c.Def(id)
		out.Defs = append(out.Defs, Def{
			ID:   id,
			GUID: node.Info().GUID,
			Node: string(node.NodeKind()),
			Type: typeOf(node),
		})
		b.node(node, &out.Children)
	}

	for _, l := range c.Layers {
		layer := Layer{Type: l.Type, Desc: l.Desc, Active: l.Active}
		for _, p := range l.Params {
			layer.Params = append(layer.Params, p.Name)
			b.node(p.Node, &layer.Inline)
		}
		out.Layers = append(out.Layers, layer)
	}

	for _, child := range c.Children() {
		out.Children = append(out.Children, b.canvas(child, "nested"))
	}
	return out
}

// node counts n and everything below it once, appending the inline
// canvases it finds to inline.
func (b *builder) node(n document.ValueNode, inline *[]Canvas) {
	if n == nil || b.seen[n] {
		return
	}
	b.seen[n] = true
	b.counts.ValueNodes++

	switch v := n.(type) {
	case *document.Constant:
		b.value(v.Value, inline)
	case *document.Animated:
		for _, wp := range v.Waypoints {
			b.value(wp.Value, inline)
		}
	case *document.StaticList:
		for _, item := range v.Items {
			b.node(item, inline)
		}
	case *document.DynamicList:
		for _, e := range v.Entries {
			b.node(e.Node, inline)
		}
	case *document.Linkable:
		for _, l := range v.Links {
			b.node(l.Node, inline)
		}
	}
}

func (b *builder) value(v document.Value, inline *[]Canvas) {
	if cv, ok := v.(*document.CanvasValue); ok && cv.Canvas != nil && cv.Canvas.Inline {
		*inline = append(*inline, b.canvas(cv.Canvas, "inline"))
	}
}

func typeOf(n document.ValueNode) string {
	switch v := n.(type) {
	case *document.Constant:
		return string(v.Value.Kind())
	case *document.Animated:
		return v.Type
	case *document.StaticList:
		return v.Type
	case *document.DynamicList:
		return v.Type
	case *document.Linkable:
		return v.Type
	}
	return ""
}
