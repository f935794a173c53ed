package toolkit

import (
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

type hashOptions struct {
	Algorithm string `validate:"omitempty,oneof=md5 sha1 sha256 sha512"`
}

// HashDigest returns the hex digest of the input. Algorithm defaults to
// sha256; md5 and sha1 are offered for checksum interop, not security.
func HashDigest(input string, opts registry.Options) (string, error) {
	o := hashOptions{Algorithm: opts["algorithm"]}
	if err := validate.Struct(o); err != nil {
		return "", userError(
			fmt.Sprintf("unsupported algorithm %q", o.Algorithm),
			"use one of: md5, sha1, sha256, sha512",
		)
	}

	var h hash.Hash
	switch o.Algorithm {
	case "md5":
		h = md5.New() //nolint:gosec
	case "sha1":
		h = sha1.New() //nolint:gosec
	case "sha512":
		h = sha512.New()
	default:
		h = sha256.New()
	}

	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil)), nil
}
