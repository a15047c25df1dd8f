package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexUint64 accepts both JSON number and JSON string forms of an id.
// Client payloads are inconsistent about quoting numeric ids.
type FlexUint64 uint64

func (f *FlexUint64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	raw := data
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("FlexUint64: %w", err)
		}
		raw = []byte(s)
	}

	raw = bytes.TrimSpace(raw)
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("FlexUint64: invalid uint64 %q: %w", string(data), err)
	}
	*f = FlexUint64(n)
	return nil
}

// MarshalJSON always emits the number form.
func (f FlexUint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(f), 10)), nil
}

func (f FlexUint64) Uint64() uint64 {
	return uint64(f)
}
