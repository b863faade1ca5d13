// Package review runs the full deck review: extraction, rule compilation and validation.
package review

import "errors"

// ErrNoRules is returned when the rule text yields no design rules
var ErrNoRules = errors.New("no design rules found in rule text")
