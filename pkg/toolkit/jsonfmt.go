package toolkit

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

const maxJSONIndent = 8

func JSONFormat(input string, opts registry.Options) (string, error) {
	indent := "  "
	if raw, ok := opts["indent"]; ok && raw != "" {
		if raw == "tab" {
			indent = "\t"
		} else {
			n, err := optInt(opts, "indent", 2)
			if err != nil {
				return "", err
			}
			if n < 0 || n > maxJSONIndent {
				return "", userError(
					"indent must be between 0 and 8 spaces",
					`pass an indent of 0-8, or "tab"`,
				)
			}
			indent = strings.Repeat(" ", n)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(input), "", indent); err != nil {
		return "", userError(
			"input is not valid JSON: "+err.Error(),
			"check for trailing commas, unquoted keys or single quotes",
		)
	}
	return buf.String(), nil
}

func JSONMinify(input string, _ registry.Options) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(input)); err != nil {
		return "", userError(
			"input is not valid JSON: "+err.Error(),
			"check for trailing commas, unquoted keys or single quotes",
		)
	}
	return buf.String(), nil
}
