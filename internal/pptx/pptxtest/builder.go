// Package pptxtest builds small in-memory presentation packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relImage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Part is one named file inside a package
type Part struct {
	Name    string
	Content string
}

// Build zips parts in the order given
func Build(t testing.TB, parts ...Part) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.Name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", p.Name, err)
		}
		if _, err := w.Write([]byte(p.Content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", p.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// Deck builds a package with one slide part per argument, numbered from 1
func Deck(t testing.TB, slides ...string) []byte {
	t.Helper()
	parts := make([]Part, 0, len(slides))
	for i, s := range slides {
		parts = append(parts, SlidePart(i+1, s))
	}
	return Build(t, parts...)
}

// SlidePart names slide XML as ppt/slides/slideN.xml
func SlidePart(n int, content string) Part {
	return Part{Name: fmt.Sprintf("ppt/slides/slide%d.xml", n), Content: content}
}

// ImageRelsPart builds the relationships part for slide n mapping ids to targets
func ImageRelsPart(n int, targets map[string]string) Part {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for id, target := range targets {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"/>`, id, relImage, target)
	}
	sb.WriteString(`</Relationships>`)
	return Part{Name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), Content: sb.String()}
}

// Slide wraps shape fragments (TextShape, Picture, ...) into a slide document
func Slide(shapes ...string) string {
	return SlideWithBackground("", shapes...)
}

// SlideWithBackground is Slide with a raw p:bg fragment
func SlideWithBackground(bg string, shapes ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:p="%s" xmlns:r="%s">
  <p:cSld>%s
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
      <p:grpSpPr/>
      %s
    </p:spTree>
  </p:cSld>
</p:sld>`, nsA, nsP, nsR, bg, strings.Join(shapes, "\n      "))
}

// TextShape is a shape holding one paragraph per entry of paragraphs;
// each paragraph is a list of runs built with Run.
func TextShape(id int, name string, paragraphs ...[]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`, id, name)
	for _, runs := range paragraphs {
		sb.WriteString("<a:p>")
		for _, r := range runs {
			sb.WriteString(r)
		}
		sb.WriteString("</a:p>")
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}

// Runs is shorthand for one paragraph
func Runs(runs ...string) []string {
	return runs
}

// RunProps describes optional run formatting. Zero values are not emitted.
type RunProps struct {
	Size     int // hundredths of a point
	Typeface string
	Color    string // srgbClr value
	Scheme   string // schemeClr value
	Bold     bool
	Italic   bool
}

// Run builds an a:r element
func Run(text string, props *RunProps) string {
	if props == nil {
		return fmt.Sprintf(`<a:r><a:t>%s</a:t></a:r>`, text)
	}

	var attrs strings.Builder
	attrs.WriteString(` lang="en-US"`)
	if props.Size > 0 {
		fmt.Fprintf(&attrs, ` sz="%d"`, props.Size)
	}
	if props.Bold {
		attrs.WriteString(` b="1"`)
	}
	if props.Italic {
		attrs.WriteString(` i="1"`)
	}

	var children strings.Builder
	switch {
	case props.Color != "":
		fmt.Fprintf(&children, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, props.Color)
	case props.Scheme != "":
		fmt.Fprintf(&children, `<a:solidFill><a:schemeClr val="%s"/></a:solidFill>`, props.Scheme)
	}
	if props.Typeface != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/>`, props.Typeface)
	}

	return fmt.Sprintf(`<a:r><a:rPr%s>%s</a:rPr><a:t>%s</a:t></a:r>`, attrs.String(), children.String(), text)
}

// Picture builds a p:pic element referencing relID
func Picture(id int, name, relID string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr/></p:pic>`, id, name, relID)
}

// ThemePart builds ppt/theme/theme1.xml with the given scheme colors (name, hex pairs)
func ThemePart(major, minor string, colors ...[2]string) Part {
	var clr strings.Builder
	for _, c := range colors {
		fmt.Fprintf(&clr, `<a:%s><a:srgbClr val="%s"/></a:%s>`, c[0], c[1], c[0])
	}
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="%s" name="Office Theme">
  <a:themeElements>
    <a:clrScheme name="Office">%s</a:clrScheme>
    <a:fontScheme name="Office">
      <a:majorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
      <a:minorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
    </a:fontScheme>
  </a:themeElements>
</a:theme>`, nsA, clr.String(), major, minor)
	return Part{Name: "ppt/theme/theme1.xml", Content: content}
}
