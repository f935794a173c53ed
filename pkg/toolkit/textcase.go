package toolkit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

type textCaseOptions struct {
	Mode string `validate:"required,oneof=upper lower title snake camel kebab"`
}

func TextCase(input string, opts registry.Options) (string, error) {
	o := textCaseOptions{Mode: opts["mode"]}
	if err := validate.Struct(o); err != nil {
		return "", userError(
			fmt.Sprintf("invalid or missing mode %q", o.Mode),
			"use one of: upper, lower, title, snake, camel, kebab",
		)
	}

	switch o.Mode {
	case "upper":
		return strings.ToUpper(input), nil
	case "lower":
		return strings.ToLower(input), nil
	}

	words := splitWords(input)

	switch o.Mode {
	case "title":
		for i, w := range words {
			words[i] = capitalize(w)
		}
		return strings.Join(words, " "), nil
	case "snake":
		return strings.ToLower(strings.Join(words, "_")), nil
	case "kebab":
		return strings.ToLower(strings.Join(words, "-")), nil
	default: // camel
		for i, w := range words {
			if i == 0 {
				words[i] = strings.ToLower(w)
			} else {
				words[i] = capitalize(w)
			}
		}
		return strings.Join(words, ""), nil
	}
}

// splitWords breaks input on separators and case boundaries, so both
// "request id" and "RequestID" yield [request id] shaped words.
func splitWords(input string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(input)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
