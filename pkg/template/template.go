// Package template resolves {{entity.field}} tokens in action message
// templates against the triggering event's payload.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/medforge/ruleflow/pkg/models"
)

var tokenPattern = regexp.MustCompile(`\{\{entity\.(\w+(?:\.\w+)*)\}\}`)

// ResolveTokens replaces every {{entity.<dot.path>}} token in input with the
// value resolved from data. Missing values substitute to the empty string,
// never the literal token.
func ResolveTokens(input string, data map[string]any) string {
	if !NeedsResolution(input) {
		return input
	}

	return tokenPattern.ReplaceAllStringFunc(input, func(token string) string {
		field := tokenPattern.FindStringSubmatch(token)[1]

		value := models.ResolveField(field, data)
		if value == nil {
			return ""
		}

		return fmt.Sprintf("%v", value)
	})
}

// NeedsResolution checks whether a string contains entity tokens, letting
// callers skip the regexp walk for plain strings.
func NeedsResolution(input string) bool {
	return strings.Contains(input, "{{entity.")
}
