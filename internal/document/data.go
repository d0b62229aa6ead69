package document

import "golang.org/x/net/html"

// ParsedDocument holds a parsed HTML document and where it came from.
type ParsedDocument struct {
	root   *html.Node
	source string
}

func NewParsedDocument(root *html.Node, source string) ParsedDocument {
	return ParsedDocument{
		root:   root,
		source: source,
	}
}

// Root returns the document node. The tree is mutable and shared.
func (p *ParsedDocument) Root() *html.Node {
	return p.root
}

// Source names the input: a file path, or "-" for standard input.
func (p *ParsedDocument) Source() string {
	return p.source
}
