// flex_list.go
//
// jobtrack - job application tracking data service
//

package types

import (
	"bytes"
	"encoding/json"
)

// FlexList accepts both a bare item and an array of items. Grant payloads
// arrive in either shape depending on the client.
type FlexList[T any] []T

func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '[' {
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		*f = FlexList[T]{item}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*f = FlexList[T](items)
	return nil
}

// Slice returns the plain slice form.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}
