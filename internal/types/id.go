// id.go
//
// jobtrack - job application tracking data service
//

package types

import (
	"strconv"
	"strings"
)

// ParseID coerces a caller-supplied string id to a numeric key.
// A missing, non-numeric, or non-positive id returns ErrNotFound: a malformed
// id must fail the lookup outright, never degrade to an unfiltered query.
func ParseID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrNotFound
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
