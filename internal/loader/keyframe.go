package loader

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

// parseKeyframe reads <keyframe time=".." [active=".."]>description</keyframe>.
// Inline canvases drop keyframes with a warning.
func parseKeyframe(p *parser, tag tagreader.Tag, c *document.Canvas) error {
	if c.Inline {
		if err := p.Warn(CodeInlineKeyframe, tag, "keyframes are not allowed in inline canvases, skipping"); err != nil {
			return err
		}
		return p.r.Skip()
	}

	s, err := requireAttr(tag, "time")
	if err != nil {
		return err
	}
	kf := document.Keyframe{Active: true}
	if kf.Time, err = p.parseTime(c, tag, s); err != nil {
		return err
	}
	if s, ok := tag.Attr("active"); ok {
		if kf.Active, err = parseBool(tag, "active", s); err != nil {
			return err
		}
	}

	if _, err := p.r.ExpectOpen("keyframe"); err != nil {
		return err
	}
	text, err := p.r.ReadText()
	if err != nil {
		return err
	}
	if err := p.r.ExpectClose("keyframe"); err != nil {
		return err
	}
	kf.Desc = text.Raw

	c.Keyframes = append(c.Keyframes, kf)
	return nil
}
