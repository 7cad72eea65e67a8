package export

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

// RenderJSON serializes v as indented JSON with keys sorted within each
// object. Non-ASCII text and markup characters are written literally.
func RenderJSON(v schema.Value) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	// encoding/json sorts map keys, which gives the stable order.
	if err := enc.Encode(toJSON(v)); err != nil {
		return "", err
	}
	return unescapeLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into the literal runes.
func unescapeLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		switch rest := s[i:]; {
		case strings.HasPrefix(rest, `\u2028`):
			b.WriteRune('\u2028')
			i += len(`\u2028`) - 1
		case strings.HasPrefix(rest, `\u2029`):
			b.WriteRune('\u2029')
			i += len(`\u2029`) - 1
		default:
			// Other escapes, \\ included, are copied whole.
			b.WriteByte(s[i])
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		}
	}
	return b.String()
}

func toJSON(v schema.Value) any {
	switch v := v.(type) {
	case schema.Sequence:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, toJSON(item))
		}
		return out
	case *schema.Mapping:
		out := make(map[string]any, v.Len())
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			out[key] = toJSON(child)
		}
		return out
	case schema.Scalar:
		switch v.Type {
		case schema.ScalarString:
			return v.Text
		case schema.ScalarNumber:
			return json.Number(v.Text)
		case schema.ScalarBool:
			return v.Text == "true"
		}
	}
	return nil
}
