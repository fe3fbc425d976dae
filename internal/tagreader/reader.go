// Package tagreader is a pull-style reader over tag-structured markup. It
// wraps encoding/xml and exposes the handful of moves a recursive descent
// parser needs: look at the next open tag, consume open and close tags,
// read text content, skip a subtree and iterate children.
package tagreader

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Tag is an open tag together with its attributes and source position.
type Tag struct {
	Name   string
	Attrs  []xml.Attr
	Line   int
	Column int
}

// Attr returns the value of the attribute called name.
func (t Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute called name is present.
func (t Tag) Has(name string) bool {
	_, ok := t.Attr(name)
	return ok
}

// Text is element content in normalized (trimmed) and raw form.
type Text struct {
	Text string
	Raw  string
}

// Error is a reader failure annotated with the source position.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

type token struct {
	tok       xml.Token
	line, col int
}

// Reader pulls tags from an underlying xml.Decoder.
type Reader struct {
	dec    *xml.Decoder
	peeked *token
	line   int
	col    int
}

// New creates a Reader over r. Non UTF-8 input is decoded according to the
// encoding named in the XML declaration.
func New(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &Reader{dec: dec, line: 1, col: 1}
}

// Pos returns the position of the most recently read token.
func (r *Reader) Pos() (line, column int) {
	return r.line, r.col
}

func (r *Reader) errorf(format string, args ...any) error {
	return &Error{Line: r.line, Column: r.col, Msg: fmt.Sprintf(format, args...)}
}

func (r *Reader) next() (*token, error) {
	if r.peeked != nil {
		t := r.peeked
		r.peeked = nil
		r.line, r.col = t.line, t.col
		return t, nil
	}
	line, col := r.dec.InputPos()
	tok, err := r.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, r.errorf("unexpected end of document")
		}
		return nil, &Error{Line: line, Column: col, Msg: err.Error()}
	}
	r.line, r.col = line, col
	return &token{tok: xml.CopyToken(tok), line: line, col: col}, nil
}

func (r *Reader) unread(t *token) {
	r.peeked = t
}

// nextSignificant skips comments, processing instructions, directives and
// whitespace-only text.
func (r *Reader) nextSignificant() (*token, error) {
	for {
		t, err := r.next()
		if err != nil {
			return nil, err
		}
		switch v := t.tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(v)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		}
		return t, nil
	}
}

func describe(tok xml.Token) string {
	switch v := tok.(type) {
	case xml.StartElement:
		return fmt.Sprintf("<%s>", v.Name.Local)
	case xml.EndElement:
		return fmt.Sprintf("</%s>", v.Name.Local)
	case xml.CharData:
		return fmt.Sprintf("text %q", strings.TrimSpace(string(v)))
	}
	return fmt.Sprintf("%T", tok)
}

func toTag(t *token) Tag {
	se := t.tok.(xml.StartElement)
	return Tag{Name: se.Name.Local, Attrs: se.Attr, Line: t.line, Column: t.col}
}

// Peek returns the next open tag without consuming it.
func (r *Reader) Peek() (Tag, error) {
	t, err := r.nextSignificant()
	if err != nil {
		return Tag{}, err
	}
	r.unread(t)
	if _, ok := t.tok.(xml.StartElement); !ok {
		return Tag{}, r.errorf("expected an element, found %s", describe(t.tok))
	}
	return toTag(t), nil
}

// ExpectOpen consumes an open tag. When name is not empty the tag must
// carry that name.
func (r *Reader) ExpectOpen(name string) (Tag, error) {
	t, err := r.nextSignificant()
	if err != nil {
		return Tag{}, err
	}
	if _, ok := t.tok.(xml.StartElement); !ok {
		return Tag{}, r.errorf("expected <%s>, found %s", name, describe(t.tok))
	}
	tag := toTag(t)
	if name != "" && tag.Name != name {
		return Tag{}, r.errorf("expected <%s>, found <%s>", name, tag.Name)
	}
	return tag, nil
}

// ExpectClose consumes the close tag of name.
func (r *Reader) ExpectClose(name string) error {
	t, err := r.nextSignificant()
	if err != nil {
		return err
	}
	end, ok := t.tok.(xml.EndElement)
	if !ok || end.Name.Local != name {
		return r.errorf("expected </%s>, found %s", name, describe(t.tok))
	}
	return nil
}

// ReadText consumes the text content of the current element up to, but
// not including, its close tag. Child elements are not allowed.
func (r *Reader) ReadText() (Text, error) {
	var raw strings.Builder
	for {
		t, err := r.next()
		if err != nil {
			return Text{}, err
		}
		switch v := t.tok.(type) {
		case xml.CharData:
			raw.Write(v)
			continue
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		case xml.StartElement:
			return Text{}, r.errorf("unexpected element <%s> in text content", v.Name.Local)
		}
		r.unread(t)
		s := raw.String()
		return Text{Text: strings.TrimSpace(s), Raw: s}, nil
	}
}

// Skip consumes the next element and its whole subtree.
func (r *Reader) Skip() error {
	if _, err := r.ExpectOpen(""); err != nil {
		return err
	}
	if err := r.dec.Skip(); err != nil {
		return r.errorf("skipping subtree: %v", err)
	}
	return nil
}

// ForEachChild calls fn once per child element until the close tag of
// enclosing, which it consumes. fn receives the child's open tag and must
// consume the whole child element. Non-whitespace text between children is
// an error.
func (r *Reader) ForEachChild(enclosing string, fn func(Tag) error) error {
	for {
		t, err := r.nextSignificant()
		if err != nil {
			return err
		}
		switch v := t.tok.(type) {
		case xml.EndElement:
			if v.Name.Local != enclosing {
				return r.errorf("expected </%s>, found </%s>", enclosing, v.Name.Local)
			}
			return nil
		case xml.StartElement:
			r.unread(t)
			if err := fn(toTag(t)); err != nil {
				return err
			}
		default:
			return r.errorf("unexpected %s inside <%s>", describe(t.tok), enclosing)
		}
	}
}
