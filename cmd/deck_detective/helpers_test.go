package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pt "github.com/AndrewHeinke/deck-design-detective/internal/pptx/pptxtest"
)

// execute runs the CLI with args and returns stdout, stderr and the command error
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content under a temp dir and returns its path
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// sampleDeck has a title slide with a 24pt red run and two pictures,
// and an empty second slide
func sampleDeck(t *testing.T) []byte {
	t.Helper()
	return pt.Deck(t,
		pt.Slide(
			pt.TextShape(2, "Title", pt.Runs(pt.Run("Welcome", &pt.RunProps{Size: 2400, Color: "FF0000", Typeface: "Arial"}))),
			pt.Picture(4, "Logo", "rId2"),
			pt.Picture(5, "Hero", "rId3"),
		),
		pt.Slide(),
	)
}
