package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseError reports that a collection file held content that could not be
// decoded as a JSON array of the expected record type. The store maps it to
// an empty collection at its boundary; everything else propagates.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

func decodeCollection[T any](path string, data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return list, nil
}

func encodeCollection[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	return json.MarshalIndent(list, "", "  ")
}
