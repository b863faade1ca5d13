package rules

import (
	"fmt"
	"io"

	"github.com/AndrewHeinke/deck-design-detective/internal/types"
)

// Compile turns markdown-flavored rule text into design rules, one per
// statement, in order of appearance. Ids are rule-1, rule-2, ... within this
// call. Empty or whitespace-only text yields no rules.
func Compile(text string) []types.DesignRule {
	return CompileStatements(Statements(text))
}

// CompileHTML compiles the list items and paragraphs of an HTML document
func CompileHTML(r io.Reader) ([]types.DesignRule, error) {
	statements, err := StatementsFromHTML(r)
	if err != nil {
		return nil, err
	}
	return CompileStatements(statements), nil
}

// CompileStatements classifies already-split statements
func CompileStatements(statements []string) []types.DesignRule {
	compiled := make([]types.DesignRule, 0, len(statements))
	for _, s := range statements {
		description := normalizeStatement(s)
		if description == "" {
			continue
		}
		kind, params := Classify(description)
		compiled = append(compiled, types.DesignRule{
			ID:          fmt.Sprintf("rule-%d", len(compiled)+1),
			Description: description,
			Type:        kind,
			Parameters:  params,
		})
	}
	return compiled
}
