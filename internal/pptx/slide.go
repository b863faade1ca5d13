package pptx

import (
	"path"
	"strconv"
	"strings"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
	"github.com/AndrewHeinke/deck-design-detective/internal/xmltree"
)

// fontSizeUnit is the number of source size units per point (sz="2400" is 24pt)
const fontSizeUnit = 100

// parseSlide builds the slide model from a decoded slide part.
// rels maps relationship ids to resolved targets.
func parseSlide(doc *xmltree.Map, rels map[string]string) types.SlideContent {
	slide := types.SlideContent{
		Texts:  []types.TextRun{},
		Images: []types.ImageRef{},
		Shapes: []types.ShapeRef{},
	}

	for _, sp := range xmltree.FindAll(doc, "sp") {
		for _, body := range sp.Get("txBody") {
			for _, para := range xmltree.FindAll(body, "p") {
				for _, r := range para.Get("r") {
					rm, ok := r.(*xmltree.Map)
					if !ok {
						continue
					}
					if run, ok := parseRun(rm); ok {
						slide.Texts = append(slide.Texts, run)
					}
				}
			}
		}
	}

	for _, pic := range xmltree.FindAll(doc, "pic") {
		slide.Images = append(slide.Images, parseImage(pic, rels))
	}

	for _, sp := range xmltree.FindAll(doc, "sp") {
		slide.Shapes = append(slide.Shapes, parseShape(sp))
	}

	slide.Background = parseBackground(xmltree.Find(doc, "cSld"))

	return slide
}

// parseRun extracts one text run. Formatting the run does not carry is left unset.
func parseRun(r *xmltree.Map) (types.TextRun, bool) {
	var sb strings.Builder
	for _, t := range r.Get("t") {
		if tm, ok := t.(*xmltree.Map); ok {
			sb.WriteString(tm.Text())
		}
	}
	content := sb.String()
	if content == "" {
		return types.TextRun{}, false
	}

	run := types.TextRun{Content: content}

	rPr := r.Child("rPr")
	if rPr == nil {
		return run, true
	}

	if sz, ok := rPr.Attr("sz"); ok {
		if v, err := strconv.ParseFloat(sz, 64); err == nil && v > 0 {
			size := v / fontSizeUnit
			run.FontSize = &size
		}
	}
	run.FontFamily = typeface(rPr)
	run.Color = colorOf(rPr.Child("solidFill"))
	run.IsBold = flag(rPr, "b")
	run.IsItalic = flag(rPr, "i")

	return run, true
}

// typeface prefers the latin font, then east asian, then complex script
func typeface(rPr *xmltree.Map) string {
	for _, tag := range []string{"latin", "ea", "cs"} {
		if face, ok := rPr.Child(tag).Attr("typeface"); ok && face != "" {
			return face
		}
	}
	return ""
}

// colorOf returns the first color value found directly under a fill-like
// element, exactly as written in the source (hex, scheme or preset token).
func colorOf(fill *xmltree.Map) string {
	for _, c := range fill.Children() {
		switch c.Tag {
		case "srgbClr", "schemeClr", "prstClr":
			if v, ok := c.Attr("val"); ok {
				return v
			}
		case "sysClr":
			if v, ok := c.Attr("lastClr"); ok {
				return v
			}
			if v, ok := c.Attr("val"); ok {
				return v
			}
		}
	}
	return ""
}

func flag(m *xmltree.Map, name string) bool {
	v, ok := m.Attr(name)
	return ok && (v == "1" || strings.EqualFold(v, "true"))
}

func parseImage(pic *xmltree.Map, rels map[string]string) types.ImageRef {
	img := types.ImageRef{}
	if cNvPr := xmltree.Find(pic.Child("nvPicPr"), "cNvPr"); cNvPr != nil {
		img.Name, _ = cNvPr.Attr("name")
	}
	if blip := xmltree.Find(pic, "blip"); blip != nil {
		img.RelID, _ = blip.Attr("embed")
		img.Target = rels[img.RelID]
	}
	if img.Name == "" {
		switch {
		case img.Target != "":
			img.Name = path.Base(img.Target)
		case img.RelID != "":
			img.Name = img.RelID
		default:
			img.Name = "image"
		}
	}
	return img
}

func parseShape(sp *xmltree.Map) types.ShapeRef {
	shape := types.ShapeRef{}
	if cNvPr := xmltree.Find(sp.Child("nvSpPr"), "cNvPr"); cNvPr != nil {
		shape.ID, _ = cNvPr.Attr("id")
		shape.Name, _ = cNvPr.Attr("name")
	}

	var lines []string
	for _, body := range sp.Get("txBody") {
		for _, para := range xmltree.FindAll(body, "p") {
			var sb strings.Builder
			for _, t := range xmltree.FindAll(para, "t") {
				sb.WriteString(t.Text())
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
	}
	shape.Text = strings.Join(lines, "\n")
	return shape
}

func parseBackground(cSld *xmltree.Map) *types.Background {
	bg := cSld.Child("bg")
	if bg == nil {
		return nil
	}

	if bgPr := bg.Child("bgPr"); bgPr != nil {
		for _, c := range bgPr.Children() {
			switch c.Tag {
			case "solidFill":
				return &types.Background{Fill: types.FillSolid, Color: colorOf(c)}
			case "gradFill":
				return &types.Background{Fill: types.FillGradient}
			case "blipFill":
				return &types.Background{Fill: types.FillImage}
			case "pattFill":
				return &types.Background{Fill: types.FillPattern}
			}
		}
	}
	if bgRef := bg.Child("bgRef"); bgRef != nil {
		return &types.Background{Fill: types.FillRef, Color: colorOf(bgRef)}
	}
	return nil
}
