package graphql

import (
	"bytes"
	"encoding/json"
)

// Response is the top-level result of Execute, matching the wire shape
// spec.md §6 describes: Data is omitted entirely on a request-level
// error, Errors is omitted when empty, and Data renders as `null` (not
// omitted) when a NonNull root field's error propagates all the way up.
// Both cases leave the Data field nil, so NullData distinguishes them:
// it's set only for the bubbled-NonNull-root case.
type Response struct {
	Data     *ResponseMap
	NullData bool
	Errors   ErrorList
}

// wireResponse is the JSON shape actually sent over the wire; MarshalJSON
// builds it from Response instead of exposing it as a field, since
// ResponseMap's ordering has to be rendered manually rather than left to
// encoding/json's usual map handling.
type wireResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors ErrorList       `json:"errors,omitempty"`
}

// MarshalJSON renders Data in the order its fields were requested,
// falling back to `null` for a root-level failure. encoding/json sorts map
// keys alphabetically by default, which would silently violate spec.md
// §4.4's ordering guarantee; orderedFieldsJSON (below) is the one place
// that's worked around.
func (r *Response) MarshalJSON() ([]byte, error) {
	out := wireResponse{Errors: r.Errors}
	if r.Data != nil {
		data, err := orderedFieldsJSON(r.Data.ToWire())
		if err != nil {
			return nil, err
		}
		out.Data = data
	} else if r.NullData {
		out.Data = json.RawMessage("null")
	}
	return json.Marshal(out)
}

// orderedFieldsJSON renders a []OrderedField (or a nested value containing
// one) as a JSON object whose key order matches the slice, by building the
// object body manually instead of going through a map.
func orderedFieldsJSON(v interface{}) (json.RawMessage, error) {
	switch vv := v.(type) {
	case []OrderedField:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range vv {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := orderedFieldsJSON(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	case []interface{}:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range vv {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := orderedFieldsJSON(elem)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return json.Marshal(vv)
	}
}
