package loader

import (
	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/tagreader"
)

func parseStaticList(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error) {
	typ, err := requireAttr(tag, "type")
	if err != nil {
		return nil, err
	}
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}

	node := &document.StaticList{Type: typ}
	err = p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		entry, err := p.parseEntry(child, tag, canvas)
		if err != nil {
			return err
		}
		node.Items = append(node.Items, entry.Node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// parseDynamicList handles dynamic_list and its synonyms bline, wplist,
// dilist and weighted_average.
func parseDynamicList(p *parser, tag tagreader.Tag, canvas *document.Canvas) (document.ValueNode, error) {
	typ, err := requireAttr(tag, "type")
	if err != nil {
		return nil, err
	}
	node := &document.DynamicList{Tag: tag.Name, Type: typ}
	if s, ok := tag.Attr("loop"); ok {
		if node.Loop, err = parseBool(tag, "loop", s); err != nil {
			return nil, err
		}
	}
	if _, err := p.r.ExpectOpen(tag.Name); err != nil {
		return nil, err
	}

	err = p.r.ForEachChild(tag.Name, func(child tagreader.Tag) error {
		entry, err := p.parseEntry(child, tag, canvas)
		if err != nil {
			return err
		}
		node.Entries = append(node.Entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// parseEntry reads one <entry [on=".."] [off=".."] [use=":id"]> of list.
func (p *parser) parseEntry(tag, list tagreader.Tag, canvas *document.Canvas) (document.ListEntry, error) {
	var entry document.ListEntry
	if tag.Name != "entry" {
		return entry, newError(KindUnexpectedElement, tag, "not allowed inside <%s>", list.Name)
	}

	var err error
	if s, ok := tag.Attr("on"); ok {
		if entry.On, err = p.parseTimeList(canvas, tag, s); err != nil {
			return entry, err
		}
	}
	if s, ok := tag.Attr("off"); ok {
		if entry.Off, err = p.parseTimeList(canvas, tag, s); err != nil {
			return entry, err
		}
	}

	if _, err := p.r.ExpectOpen("entry"); err != nil {
		return entry, err
	}
	entry.Node, err = ParseWrappedNode(p, tag, canvas)
	return entry, err
}
