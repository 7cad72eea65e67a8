package schema

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotAnObject = errors.New("scan result is not a JSON object")
	ErrBadFindings = errors.New("vulnerabilities is not a list of objects")
)

// Parse decodes JSON into a Value tree, keeping object keys in document
// order. Comments and trailing commas are tolerated.
func Parse(data []byte) (Value, error) {
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		m := NewMapping()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.String(), fromResult(v))
			return true
		})
		return m
	case r.IsArray():
		seq := Sequence{}
		r.ForEach(func(_, v gjson.Result) bool {
			seq = append(seq, fromResult(v))
			return true
		})
		return seq
	}

	switch r.Type {
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		return Scalar{Type: ScalarNumber, Text: r.Raw}
	case gjson.True, gjson.False:
		return Scalar{Type: ScalarBool, Text: r.Raw}
	default:
		return Scalar{Type: ScalarNull}
	}
}

// ParseRecord decodes a JSON-encoded scan result. The root must be an object
// and vulnerabilities, when present, a list of objects.
func ParseRecord(data []byte) (*ScanResultRecord, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*Mapping)
	if !ok {
		return nil, ErrNotAnObject
	}

	rec := &ScanResultRecord{root: root}
	raw, ok := root.Get("vulnerabilities")
	if !ok {
		return rec, nil
	}
	switch vulns := raw.(type) {
	case Sequence:
		for i, item := range vulns {
			f, ok := item.(*Mapping)
			if !ok {
				return nil, fmt.Errorf("%w: item %d", ErrBadFindings, i)
			}
			rec.findings = append(rec.findings, f)
		}
	case Scalar:
		if vulns.Type != ScalarNull {
			return nil, ErrBadFindings
		}
	default:
		return nil, ErrBadFindings
	}
	return rec, nil
}

// WithTarget returns data with its top-level target set. An existing key
// keeps its position; a new one is appended.
func WithTarget(data []byte, target string) ([]byte, error) {
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	out, err := sjson.SetBytes(data, "target", target)
	if err != nil {
		return nil, fmt.Errorf("set target: %w", err)
	}
	return out, nil
}
