package record

import (
	"net/url"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
)

// Encode percent-encodes id so that it fits on a single line.
func Encode(id core.TestID) string {
	return url.PathEscape(string(id))
}

// Decode reverses Encode. Lines that are not valid percent-encoding are
// returned verbatim, which keeps legacy unencoded records readable.
func Decode(line string) (core.TestID, bool) {
	id, err := url.PathUnescape(line)
	if err != nil {
		return core.TestID(line), false
	}
	return core.TestID(id), true
}
