// Package schemas holds the JSON Schemas of the artifacts written by the CLI.
package schemas

import _ "embed"

// Report is the JSON Schema of a deck review report
//
//go:embed report.schema.json
var Report string
