package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/metrics"
	"github.com/ivlev/canvasdoc/internal/registry"
	"github.com/ivlev/canvasdoc/internal/tagreader"
	"github.com/ivlev/canvasdoc/internal/timecode"
)

// parser is the state of one load. It implements Context.
type parser struct {
	r       *tagreader.Reader
	reg     *registry.Registry
	opts    Options
	log     *slog.Logger
	metrics *metrics.Collector
	diags   []Diagnostic

	// rootGUID scopes value node reference ids. It is the reference id of
	// the document's root canvas.
	rootGUID string
}

func (p *parser) Reader() *tagreader.Reader { return p.r }

func (p *parser) ParseValueNode(canvas *document.Canvas) (document.ValueNode, error) {
	return p.parseValueNode(canvas)
}

func (p *parser) ParseCanvas(parent *document.Canvas, inline bool) (*document.Canvas, error) {
	return p.parseCanvas(parent, inline)
}

func (p *parser) Warn(code string, tag tagreader.Tag, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.opts.Strict {
		return &ParseError{
			Kind:    KindLenient,
			Element: tag.Name,
			Message: fmt.Sprintf("%s (%s)", msg, code),
			Line:    tag.Line,
			Column:  tag.Column,
		}
	}
	p.diags = append(p.diags, Diagnostic{
		Code:    code,
		Element: tag.Name,
		Message: msg,
		Line:    tag.Line,
		Column:  tag.Column,
	})
	p.metrics.Diagnostic(code)
	p.log.Warn(msg, "code", code, "element", tag.Name, "line", tag.Line)
	return nil
}

// ParseTime parses a time code. Time codes never fail on their own; their
// warnings go through Warn, which fails only in strict mode.
func (p *parser) ParseTime(canvas *document.Canvas, tag tagreader.Tag, text string) (float64, error) {
	return p.parseTime(canvas, tag, text)
}

func (p *parser) parseTime(canvas *document.Canvas, tag tagreader.Tag, text string) (float64, error) {
	v, warnings := timecode.Parse(text, fpsOf(canvas))
	for _, w := range warnings {
		if err := p.Warn(CodeTimeFormat, tag, "%s", w); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (p *parser) ResolveUse(canvas *document.Canvas, tag tagreader.Tag, ref string) (document.ValueNode, error) {
	id, ok := strings.CutPrefix(ref, ":")
	if !ok || id == "" || strings.Contains(id, ":") {
		return nil, newAttrError(KindUnresolvedReference, tag, "use", "unsupported reference %q", ref)
	}
	node, found := canvas.Lookup(id)
	if !found {
		return nil, newAttrError(KindUnresolvedReference, tag, "use", "no definition %q is visible here", id)
	}
	p.metrics.ReferenceResolved()
	return node, nil
}

// fpsOf returns the frame rate in effect on c: its own, or the nearest
// enclosing canvas that declares one.
func fpsOf(c *document.Canvas) float64 {
	for cur := c; cur != nil; {
		if cur.FPS > 0 {
			return cur.FPS
		}
		if cur.Parent != nil {
			cur = cur.Parent
		} else {
			cur = cur.Outer()
		}
	}
	return 0
}

func requireAttr(tag tagreader.Tag, name string) (string, error) {
	v, ok := tag.Attr(name)
	if !ok {
		return "", newAttrError(KindMissingAttribute, tag, name, "missing required attribute")
	}
	return v, nil
}

func parseFloat(tag tagreader.Tag, attr, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, newAttrError(KindInvalidValue, tag, attr, "%q is not a number", s)
	}
	return v, nil
}

func parseInt(tag tagreader.Tag, attr, s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != float64(int(v)) {
		return 0, newAttrError(KindInvalidValue, tag, attr, "%q is not an integer", s)
	}
	return int(v), nil
}

func parseBool(tag tagreader.Tag, attr, s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, newAttrError(KindInvalidValue, tag, attr, "%q is not a boolean (true, false, 1, 0)", s)
}

// parseFloats reads a space separated list of exactly n numbers.
func parseFloats(tag tagreader.Tag, attr, s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, newAttrError(KindArity, tag, attr, "expected %d numbers, found %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := parseFloat(tag, attr, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseTimeList reads a comma separated list of time codes.
func (p *parser) parseTimeList(canvas *document.Canvas, tag tagreader.Tag, s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := p.parseTime(canvas, tag, part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
