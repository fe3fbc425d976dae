package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// ErrorKind categorizes fatal parse errors.
type ErrorKind string

const (
	KindSyntax              ErrorKind = "syntax"               // malformed markup
	KindMissingAttribute    ErrorKind = "missing_attribute"    // required attribute absent
	KindInvalidValue        ErrorKind = "invalid_value"        // unparsable number, bad enum value
	KindArity               ErrorKind = "arity"                // wrong number of components or children
	KindRange               ErrorKind = "range"                // numeric value out of bounds
	KindUnexpectedElement   ErrorKind = "unexpected_element"   // element not allowed here
	KindTypeMismatch        ErrorKind = "type_mismatch"        // value of the wrong variant
	KindUnresolvedReference ErrorKind = "unresolved_reference" // use=":id" without a definition
	KindDuplicateReference  ErrorKind = "duplicate_reference"  // id bound twice
	KindLenient             ErrorKind = "lenient"              // warning promoted by strict mode
)

// ParseError is a fatal error that aborts the whole load.
type ParseError struct {
	Kind      ErrorKind
	Element   string
	Attribute string
	Message   string
	Line      int
	Column    int
	Err       error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", e.Kind))
	if e.Element != "" {
		sb.WriteString(fmt.Sprintf("<%s> ", e.Element))
	}
	if e.Attribute != "" {
		sb.WriteString(fmt.Sprintf("attribute %q: ", e.Attribute))
	}
	sb.WriteString(e.Message)
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column))
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

func newError(kind ErrorKind, tag tagreader.Tag, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Element: tag.Name,
		Message: fmt.Sprintf(format, args...),
		Line:    tag.Line,
		Column:  tag.Column,
	}
}

func newAttrError(kind ErrorKind, tag tagreader.Tag, attr string, format string, args ...any) *ParseError {
	e := newError(kind, tag, format, args...)
	e.Attribute = attr
	return e
}

// classify turns reader failures into syntax errors and leaves parse
// errors untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	var re *tagreader.Error
	if errors.As(err, &re) {
		return &ParseError{Kind: KindSyntax, Message: re.Msg, Line: re.Line, Column: re.Column, Err: err}
	}
	return &ParseError{Kind: KindSyntax, Message: err.Error(), Err: err}
}

// Diagnostic codes for conditions that are reported but do not stop a
// lenient load.
const (
	CodeUnsupportedElement = "unsupported_element"
	CodeInlineKeyframe     = "inline_keyframe"
	CodeInlineMeta         = "inline_meta"
	CodeTimeFormat         = "time_format"
)

// Diagnostic is a warning collected during a lenient load.
type Diagnostic struct {
	Code    string
	Element string
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: <%s> %s (line %d)", d.Code, d.Element, d.Message, d.Line)
}
