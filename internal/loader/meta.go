package loader

import (
	"strings"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// commaDecimalKeys are metadata keys whose numbers were historically
// written with a decimal comma.
var commaDecimalKeys = map[string]bool{
	"background_first_color":  true,
	"background_second_color": true,
	"background_size":         true,
	"grid_color":              true,
	"grid_size":               true,
	"guide_color":             true,
	"jack_offset":             true,
	"onion_skin_past":         true,
	"onion_skin_future":       true,
}

// parseMeta reads <meta name=".." content=".."/>. Inline canvases drop
// metadata with a warning.
func parseMeta(p *parser, tag tagreader.Tag, c *document.Canvas) error {
	if c.Inline {
		if err := p.Warn(CodeInlineMeta, tag, "metadata is not allowed in inline canvases, skipping"); err != nil {
			return err
		}
		return p.r.Skip()
	}

	key, err := requireAttr(tag, "name")
	if err != nil {
		return err
	}
	content, err := requireAttr(tag, "content")
	if err != nil {
		return err
	}
	if commaDecimalKeys[key] {
		content = strings.ReplaceAll(content, ",", ".")
	}
	if err := p.r.Skip(); err != nil {
		return err
	}

	c.SetMeta(key, content)
	return nil
}
