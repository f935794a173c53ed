// Package toolkit ships the built-in developer utilities. Every tool
// body is a pure registry.Func; options arrive as an open string map
// and are validated here, not by shared infrastructure.
package toolkit

import (
	"fmt"
	"strconv"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func userError(message, suggestion string) error {
	return &registry.ToolError{Message: message, Suggestion: suggestion}
}

// optInt reads an integer option, falling back to def when absent.
func optInt(opts registry.Options, key string, def int) (int, error) {
	raw, ok := opts[key]
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, userError(
			fmt.Sprintf("option %q must be an integer, got %q", key, raw),
			fmt.Sprintf("pass a whole number for %q", key),
		)
	}
	return n, nil
}
