package toolkit

import (
	"encoding/base64"
	"fmt"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

type base64Options struct {
	Alphabet string `validate:"omitempty,oneof=std url"`
}

func base64Encoding(opts registry.Options) (*base64.Encoding, error) {
	o := base64Options{Alphabet: opts["alphabet"]}
	if err := validate.Struct(o); err != nil {
		return nil, userError(
			fmt.Sprintf("invalid alphabet %q", o.Alphabet),
			`use "std" or "url"`,
		)
	}
	if o.Alphabet == "url" {
		return base64.URLEncoding, nil
	}
	return base64.StdEncoding, nil
}

func Base64Encode(input string, opts registry.Options) (string, error) {
	enc, err := base64Encoding(opts)
	if err != nil {
		return "", err
	}
	return enc.EncodeToString([]byte(input)), nil
}

func Base64Decode(input string, opts registry.Options) (string, error) {
	enc, err := base64Encoding(opts)
	if err != nil {
		return "", err
	}

	decoded, err := enc.DecodeString(input)
	if err != nil {
		// Retry without padding before giving up.
		raw := base64.RawStdEncoding
		if enc == base64.URLEncoding {
			raw = base64.RawURLEncoding
		}
		decoded, err = raw.DecodeString(input)
	}
	if err != nil {
		return "", userError(
			"input is not valid base64",
			"check for invalid characters or truncated padding",
		)
	}
	return string(decoded), nil
}
