package toolkit

import (
	"fmt"
	"strings"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
	"github.com/google/uuid"
)

const maxUUIDCount = 100

type uuidOptions struct {
	Version string `validate:"omitempty,oneof=4 7"`
	Count   int    `validate:"min=1,max=100"`
}

// UUIDGenerate needs no input; it emits one id per line. Version 7 ids
// are time-sortable, version 4 (the default) fully random.
func UUIDGenerate(_ string, opts registry.Options) (string, error) {
	count, err := optInt(opts, "count", 1)
	if err != nil {
		return "", err
	}

	o := uuidOptions{Version: opts["version"], Count: count}
	if err := validate.Struct(o); err != nil {
		return "", userError(
			"invalid uuid options",
			fmt.Sprintf(`use version "4" or "7" and a count between 1 and %d`, maxUUIDCount),
		)
	}

	ids := make([]string, 0, count)
	for range count {
		if o.Version == "7" {
			id, err := uuid.NewV7()
			if err != nil {
				return "", fmt.Errorf("uuid v7 generation failed: %w", err)
			}
			ids = append(ids, id.String())
			continue
		}
		ids = append(ids, uuid.NewString())
	}
	return strings.Join(ids, "\n"), nil
}
