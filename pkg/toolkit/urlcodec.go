package toolkit

import (
	"fmt"
	"net/url"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

type urlOptions struct {
	Mode string `validate:"omitempty,oneof=query path"`
}

func urlMode(opts registry.Options) (string, error) {
	o := urlOptions{Mode: opts["mode"]}
	if err := validate.Struct(o); err != nil {
		return "", userError(
			fmt.Sprintf("invalid mode %q", o.Mode),
			`use "query" (spaces become +) or "path"`,
		)
	}
	if o.Mode == "" {
		return "query", nil
	}
	return o.Mode, nil
}

func URLEncode(input string, opts registry.Options) (string, error) {
	mode, err := urlMode(opts)
	if err != nil {
		return "", err
	}
	if mode == "path" {
		return url.PathEscape(input), nil
	}
	return url.QueryEscape(input), nil
}

func URLDecode(input string, opts registry.Options) (string, error) {
	mode, err := urlMode(opts)
	if err != nil {
		return "", err
	}

	var decoded string
	if mode == "path" {
		decoded, err = url.PathUnescape(input)
	} else {
		decoded, err = url.QueryUnescape(input)
	}
	if err != nil {
		return "", userError(
			"input is not valid percent-encoding",
			"check for stray % characters not followed by two hex digits",
		)
	}
	return decoded, nil
}
