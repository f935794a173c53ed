package toolkit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devbelt/toolbox-mcp/pkg/registry"
)

// millisCutoff distinguishes second from millisecond epochs: values this
// large as seconds would be past the year 33658.
const millisCutoff = 1e12

type timestampOptions struct {
	To string `validate:"omitempty,oneof=rfc3339 unix"`
}

// TimestampConvert converts between unix epochs and RFC 3339. With no
// input it reports the current time. Direction is inferred from the
// input unless the "to" option forces it.
func TimestampConvert(input string, opts registry.Options) (string, error) {
	o := timestampOptions{To: opts["to"]}
	if err := validate.Struct(o); err != nil {
		return "", userError(
			fmt.Sprintf("invalid target %q", o.To),
			`use "rfc3339" or "unix"`,
		)
	}

	var parsed time.Time
	switch {
	case input == "":
		parsed = time.Now().UTC()
	default:
		var err error
		parsed, err = parseTimestamp(input)
		if err != nil {
			return "", err
		}
	}

	to := o.To
	if to == "" {
		// Round-trip by default: numeric input renders as RFC 3339 and
		// vice versa; bare "now" renders as RFC 3339.
		if _, err := strconv.ParseInt(input, 10, 64); err == nil && input != "" {
			to = "rfc3339"
		} else if input == "" {
			to = "rfc3339"
		} else {
			to = "unix"
		}
	}

	if to == "unix" {
		return strconv.FormatInt(parsed.Unix(), 10), nil
	}
	return parsed.UTC().Format(time.RFC3339), nil
}

func parseTimestamp(input string) (time.Time, error) {
	if epoch, err := strconv.ParseInt(input, 10, 64); err == nil {
		if epoch > millisCutoff || epoch < -millisCutoff {
			return time.UnixMilli(epoch).UTC(), nil
		}
		return time.Unix(epoch, 0).UTC(), nil
	}

	parsed, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, userError(
			fmt.Sprintf("could not parse %q as a timestamp", input),
			"provide a unix epoch in seconds or milliseconds, or an RFC 3339 string",
		)
	}
	return parsed, nil
}
