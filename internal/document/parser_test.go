package document_test

import (
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/amp-sanitizer/internal/document"
	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoscriptContentIsMarkup(t *testing.T) {
	p := document.NewHTMLParser(nil)

	doc, err := p.Parse("page.html", []byte(`<html><body><noscript><img src="a.png"></noscript></body></html>`))

	require.Nil(t, err)
	assert.Equal(t, "page.html", doc.Source())
	assert.Equal(t, 1, goquery.NewDocumentFromNode(doc.Root()).Find("noscript > img").Length())
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	p := document.NewHTMLParser(nil)

	doc, err := p.Parse("-", append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<p>x</p>`)...))
	require.Nil(t, err)

	out, err := p.Render(doc)
	require.Nil(t, err)
	assert.Equal(t, `<html><head></head><body><p>x</p></body></html>`, string(out))
}

func TestParse_EmptyInput(t *testing.T) {
	sink := &errorSink{}
	p := document.NewHTMLParser(sink)

	_, err := p.Parse("empty.html", []byte(" \n\t"))

	require.NotNil(t, err)
	var docErr *document.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, document.ErrCauseEmptyInput, docErr.Cause)
	require.Len(t, sink.errors, 1)
	assert.Equal(t, "HTMLParser.Parse", sink.errors[0].action)
	assert.Equal(t, metadata.CauseContentInvalid, sink.errors[0].cause)
	assert.Contains(t, sink.errors[0].attrs, metadata.NewAttr(metadata.AttrPath, "empty.html"))
}

func TestRender_RoundTrip(t *testing.T) {
	p := document.NewHTMLParser(nil)
	markup := `<!DOCTYPE html><html amp=""><head><title>t</title></head><body><amp-img src="a.png" width="1" height="1"></amp-img></body></html>`

	doc, err := p.Parse("in.html", []byte(markup))
	require.Nil(t, err)
	out, err := p.Render(doc)

	require.Nil(t, err)
	assert.Equal(t, markup, string(out))
}

func TestRender_NilDocument(t *testing.T) {
	sink := &errorSink{}
	p := document.NewHTMLParser(sink)

	_, err := p.Render(document.NewParsedDocument(nil, "x"))

	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "render failed")
	require.Len(t, sink.errors, 1)
	assert.Equal(t, metadata.CauseInvariantViolation, sink.errors[0].cause)
}
