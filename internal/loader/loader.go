// Package loader parses canvas documents into a document tree.
//
// A load is synchronous and single threaded. Every load owns a fresh
// reference registry, so independent loads may run concurrently.
//
// Warn-and-continue conditions (unsupported bones, keyframes or metadata
// inside inline canvases, ambiguous time codes) are collected as
// Diagnostics on the Result in lenient mode. With Options.Strict set the
// first such condition aborts the load with a KindLenient *ParseError.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/metrics"
	"github.com/ivlev/canvasdoc/internal/registry"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// Options configures a Loader. The zero value is a lenient loader with
// the default layer and linkable parsers.
type Options struct {
	Strict bool
	Logger *slog.Logger
	// Metrics is optional; nil disables metrics.
	Metrics   *metrics.Collector
	Layers    LayerParser
	Linkables LinkableParser
	// NewID generates reference ids for elements that carry none.
	// Defaults to random UUIDs.
	NewID func() string
}

// Result is a fully resolved document plus what was noticed on the way.
type Result struct {
	Canvas      *document.Canvas
	Diagnostics []Diagnostic
	// References is the number of registry entries created by the load.
	References int
}

// Loader loads documents with a fixed set of options.
type Loader struct {
	opts Options
}

// New creates a Loader, filling in defaults for unset options.
func New(opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Layers == nil {
		opts.Layers = DefaultLayerParser{}
	}
	if opts.Linkables == nil {
		opts.Linkables = NewDefaultLinkableParser()
	}
	return &Loader{opts: opts}
}

// Load parses a whole document whose root element is a canvas.
func (l *Loader) Load(r io.Reader) (*Result, error) {
	start := time.Now()
	res, err := l.load(r)
	status := "ok"
	if err != nil {
		status = "error"
	}
	l.opts.Metrics.DocumentLoaded(status, time.Since(start))
	return res, err
}

func (l *Loader) load(r io.Reader) (*Result, error) {
	reg := registry.New()
	if l.opts.NewID != nil {
		reg = registry.NewWithGenerator(l.opts.NewID)
	}
	p := &parser{
		r:       tagreader.New(r),
		reg:     reg,
		opts:    l.opts,
		log:     l.opts.Logger,
		metrics: l.opts.Metrics,
	}

	tag, err := p.r.Peek()
	if err != nil {
		return nil, classify(err)
	}
	if tag.Name != "canvas" {
		return nil, newError(KindUnexpectedElement, tag, "document root must be <canvas>")
	}

	canvas, err := p.parseCanvas(nil, false)
	if err != nil {
		return nil, classify(err)
	}

	return &Result{
		Canvas:      canvas,
		Diagnostics: p.diags,
		References:  reg.Len(),
	}, nil
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	res, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Load parses a document with default options and returns its root canvas.
func Load(r io.Reader) (*document.Canvas, error) {
	res, err := New(Options{}).Load(r)
	if err != nil {
		return nil, err
	}
	return res.Canvas, nil
}

// Context is the view of an in-progress load given to layer and linkable
// parsers.
type Context interface {
	Reader() *tagreader.Reader
	// ParseValueNode parses the element at the reader position as a value
	// node owned by canvas.
	ParseValueNode(canvas *document.Canvas) (document.ValueNode, error)
	// ParseCanvas parses the canvas element at the reader position.
	ParseCanvas(parent *document.Canvas, inline bool) (*document.Canvas, error)
	// ResolveUse resolves a use=":id" reference visible from canvas.
	ResolveUse(canvas *document.Canvas, tag tagreader.Tag, ref string) (document.ValueNode, error)
	// ParseTime parses a time code with the frame rate in effect on canvas.
	// It fails only when a time code warning is promoted by strict mode.
	ParseTime(canvas *document.Canvas, tag tagreader.Tag, text string) (float64, error)
	// Warn reports a non-fatal condition. It returns an error only in
	// strict mode.
	Warn(code string, tag tagreader.Tag, format string, args ...any) error
}

// LayerParser consumes exactly one <layer> element.
type LayerParser interface {
	ParseLayer(ctx Context, canvas *document.Canvas) (*document.Layer, error)
}

// LinkableParser parses externally defined value node kinds. It returns
// nil without consuming anything when it does not know the element.
type LinkableParser interface {
	TryParseLinkable(ctx Context, canvas *document.Canvas) (document.ValueNode, error)
}
