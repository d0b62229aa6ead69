package document

import (
	"bytes"
	"time"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse HTML bytes into a mutable document tree
- Render a (sanitized) tree back to bytes

Parsing runs with scripting disabled so the content of <noscript> is
parsed as markup and can be validated like any other element.
*/

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type HTMLParser struct {
	metadataSink metadata.MetadataSink
}

func NewHTMLParser(metadataSink metadata.MetadataSink) HTMLParser {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return HTMLParser{
		metadataSink: metadataSink,
	}
}

func (p *HTMLParser) Parse(source string, data []byte) (ParsedDocument, failure.ClassifiedError) {
	root, err := parse(data)
	if err != nil {
		p.record("HTMLParser.Parse", source, err)
		return ParsedDocument{}, err
	}
	return NewParsedDocument(root, source), nil
}

func (p *HTMLParser) Render(doc ParsedDocument) ([]byte, failure.ClassifiedError) {
	out, err := render(doc.Root())
	if err != nil {
		p.record("HTMLParser.Render", doc.Source(), err)
		return nil, err
	}
	return out, nil
}

func (p *HTMLParser) record(action, source string, err *DocumentError) {
	p.metadataSink.RecordError(
		time.Now(),
		"document",
		action,
		mapDocumentErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, source),
		},
	)
}

func parse(data []byte) (*html.Node, *DocumentError) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DocumentError{Cause: ErrCauseEmptyInput}
	}
	root, err := html.ParseWithOptions(bytes.NewReader(data), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, &DocumentError{
			Message: err.Error(),
			Cause:   ErrCauseParseFailed,
		}
	}
	return root, nil
}

func render(root *html.Node) ([]byte, *DocumentError) {
	if root == nil {
		return nil, &DocumentError{Message: "nil document", Cause: ErrCauseRenderFailed}
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, &DocumentError{
			Message: err.Error(),
			Cause:   ErrCauseRenderFailed,
		}
	}
	return buf.Bytes(), nil
}
