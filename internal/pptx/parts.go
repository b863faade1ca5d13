package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/AndrewHeinke/deck-design-detective/internal/xmltree"
)

var (
	slidePartPattern = regexp.MustCompile(`(?:^|/)slides/slide[^/]*\.xml$`)
	themePartPattern = regexp.MustCompile(`(?:^|/)theme/theme\d+\.xml$`)
	partIndexPattern = regexp.MustCompile(`(\d+)\.xml$`)
)

// part is one XML document inside the package
type part struct {
	name  string
	index int
	file  *zip.File
}

// partIndex returns the numeric index embedded in a part name (slide12.xml -> 12).
// Names without one sort as 0.
func partIndex(name string) int {
	m := partIndexPattern.FindStringSubmatch(path.Base(name))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// selectParts returns the parts whose names match pattern, ordered by embedded index.
// Zip directory order is not guaranteed to follow slide order.
func selectParts(files []*zip.File, pattern *regexp.Regexp) []part {
	var parts []part
	for _, f := range files {
		if !pattern.MatchString(f.Name) {
			continue
		}
		parts = append(parts, part{name: f.Name, index: partIndex(f.Name), file: f})
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].index < parts[j].index
	})
	return parts
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part: %w", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part: %w", err)
	}
	return data, nil
}

// relsPartName maps ppt/slides/slide1.xml to ppt/slides/_rels/slide1.xml.rels
func relsPartName(name string) string {
	return path.Join(path.Dir(name), "_rels", path.Base(name)+".rels")
}

// readRelationships loads the relationship targets of a part, keyed by Id.
// Internal targets are resolved against the part's directory. A missing or
// broken relationships part yields an empty map.
func readRelationships(files map[string]*zip.File, partName string) map[string]string {
	targets := make(map[string]string)

	f, ok := files[relsPartName(partName)]
	if !ok {
		return targets
	}
	data, err := readPart(f)
	if err != nil {
		return targets
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return targets
	}

	for _, rel := range xmltree.FindAll(doc, "Relationship") {
		id, ok := rel.Attr("Id")
		if !ok {
			continue
		}
		target, _ := rel.Attr("Target")
		if mode, _ := rel.Attr("TargetMode"); !strings.EqualFold(mode, "External") && target != "" {
			if strings.HasPrefix(target, "/") {
				target = strings.TrimPrefix(target, "/")
			} else {
				target = path.Join(path.Dir(partName), target)
			}
		}
		targets[id] = target
	}
	return targets
}
