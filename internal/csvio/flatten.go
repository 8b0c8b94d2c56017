// Package csvio implements the CSV codec used by the bulk export and
// import pipelines: flattening nested row objects to dotted-path
// mappings, serializing rows with minimal quoting, and a permissive
// quote-aware parser for uploaded files.
package csvio

import "encoding/json"

// Flatten converts a nested row object into a single-level mapping keyed
// by dotted paths, e.g. {"profile": {"brand": "X"}} -> {"profile.brand": "X"}.
// Arrays are serialized whole as a JSON string (empty arrays to the empty
// string), nil values stay nil, everything else passes through unchanged.
func Flatten(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	flattenInto(out, "", row)
	return out
}

func flattenInto(out map[string]any, prefix string, obj map[string]any) {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flattenInto(out, path, v)
		case []any:
			if len(v) == 0 {
				out[path] = ""
				continue
			}
			encoded, err := json.Marshal(v)
			if err != nil {
				out[path] = ""
				continue
			}
			out[path] = string(encoded)
		case nil:
			out[path] = nil
		default:
			out[path] = value
		}
	}
}
