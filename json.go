package shapemap

import (
	json "github.com/goccy/go-json"
)

// MapJSONValue decodes a JSON object (or null) and projects it onto T's
// declared shape. JSON null maps to a nil result.
func MapJSONValue[T any](data []byte, opts ...Option) (map[string]any, error) {
	var src any
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return Map[T](src, opts...)
}

// MapJSON decodes a JSON object, projects it onto T's declared shape, and
// re-encodes the result. JSON null round-trips as "null".
func MapJSON[T any](data []byte, opts ...Option) ([]byte, error) {
	out, err := MapJSONValue[T](data, opts...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []byte("null"), nil
	}
	return json.Marshal(out)
}

// MapJSONArray decodes a JSON array and projects each element onto T's
// declared shape, preserving order and nil elements.
func MapJSONArray[T any](data []byte, opts ...Option) ([]byte, error) {
	var src any
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out, err := MapArray[T](src, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
