package rules

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Statements splits markdown-flavored text into candidate rule statements.
// Every line of every paragraph, list item, setext heading and indented code
// block is one statement, in document order. ATX headings (# Title), fenced
// code and raw HTML blocks are not statements.
func Statements(source string) []string {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			if !isATXHeading(n, src) {
				out = appendLines(out, n, src)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock, ast.KindCodeBlock:
			out = appendLines(out, n, src)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return out
}

func appendLines(out []string, n ast.Node, src []byte) []string {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if line := strings.TrimSpace(string(seg.Value(src))); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// isATXHeading reports whether a heading was written with a leading '#'.
// Setext headings ("text" underlined by --- or ===) start with their content.
func isATXHeading(n ast.Node, src []byte) bool {
	lines := n.Lines()
	if lines.Len() == 0 {
		return true
	}
	start := lines.At(0).Start
	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	return strings.HasSuffix(strings.TrimSpace(string(src[lineStart:start])), "#")
}

// StatementsFromHTML extracts candidate statements from an HTML guideline
// document: each line of each list item and paragraph, in document order.
func StatementsFromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &SourceError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	var out []string
	doc.Find("li, p").Each(func(_ int, s *goquery.Selection) {
		// nested lists and paragraphs are visited on their own
		own := s.Clone()
		own.Find("ul, ol, li, p").Remove()

		for _, line := range strings.Split(own.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	})

	return out, nil
}
