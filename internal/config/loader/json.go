package loader

import (
	"errors"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errInvalidJSON = errors.New("invalid JSON document")

func decodeJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top-level JSON value must be an object")
	}
	config, _ := root.Value().(map[string]any)
	return config, nil
}

// encodeJSON writes one flattened key at a time so the output is stable
// regardless of map iteration order.
func encodeJSON(config map[string]any) ([]byte, error) {
	flat := Flatten(config)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []byte("{}")
	for _, k := range keys {
		var err error
		out, err = sjson.SetBytes(out, k, flat[k])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
