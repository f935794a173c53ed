package toolkit

import (
	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

// Manifest returns the descriptors of every built-in tool, in the order
// they should be registered.
func Manifest() []registry.Descriptor {
	return []registry.Descriptor{
		{
			ID:            "base64-encode",
			Category:      registry.CategoryEncoding,
			DisplayName:   "Base64 Encoder",
			RequiresInput: true,
			Run:           Base64Encode,
		},
		{
			ID:            "base64-decode",
			Category:      registry.CategoryEncoding,
			DisplayName:   "Base64 Decoder",
			RequiresInput: true,
			Run:           Base64Decode,
		},
		{
			ID:            "url-encode",
			Category:      registry.CategoryEncoding,
			DisplayName:   "URL Encoder",
			RequiresInput: true,
			Run:           URLEncode,
		},
		{
			ID:            "url-decode",
			Category:      registry.CategoryEncoding,
			DisplayName:   "URL Decoder",
			RequiresInput: true,
			Run:           URLDecode,
		},
		{
			ID:            "json-format",
			Category:      registry.CategoryFormatting,
			DisplayName:   "JSON Formatter",
			RequiresInput: true,
			Run:           JSONFormat,
		},
		{
			ID:            "json-minify",
			Category:      registry.CategoryFormatting,
			DisplayName:   "JSON Minifier",
			RequiresInput: true,
			Run:           JSONMinify,
		},
		{
			ID:            "hash",
			Category:      registry.CategoryGenerators,
			DisplayName:   "Hash Digest",
			RequiresInput: true,
			Run:           HashDigest,
		},
		{
			ID:          "uuid-generate",
			Category:    registry.CategoryGenerators,
			DisplayName: "UUID Generator",
			Run:         UUIDGenerate,
		},
		{
			ID:            "text-case",
			Category:      registry.CategoryText,
			DisplayName:   "Case Converter",
			RequiresInput: true,
			Run:           TextCase,
		},
		{
			ID:          "timestamp-convert",
			Category:    registry.CategoryTime,
			DisplayName: "Timestamp Converter",
			Run:         TimestampConvert,
		},
	}
}
