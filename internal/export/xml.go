package export

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

const (
	indent     = "    "
	elementTag = "vulnerability"
)

// RenderXML serializes v as an XML fragment. Mapping keys become element
// names, sequence items are wrapped in <vulnerability> elements and text
// scalars are escaped.
func RenderXML(v schema.Value) string {
	return renderXML(v, "")
}

func renderXML(v schema.Value, padding string) string {
	var lines []string

	switch v := v.(type) {
	case schema.Sequence:
		for _, item := range v {
			lines = append(lines,
				indent+"<"+elementTag+">",
				renderXML(item, padding),
				indent+"</"+elementTag+">",
			)
		}
	case *schema.Mapping:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			lines = append(lines,
				padding+"<"+key+">",
				renderXML(child, indent+padding),
				padding+"</"+key+">",
			)
		}
	case schema.Scalar:
		return padding + scalarXML(v)
	}

	return strings.Join(lines, "\n")
}

func scalarXML(s schema.Scalar) string {
	if s.Type != schema.ScalarString {
		return s.String()
	}
	var b strings.Builder
	// strings.Builder never fails a write.
	_ = xml.EscapeText(&b, []byte(s.Text))
	return b.String()
}

// nameStart and nameRest are the NameStartChar and NameChar classes of XML
// 1.0, minus the colon.
var (
	nameStart = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 'A', Hi: 'Z', Stride: 1},
			{Lo: '_', Hi: '_', Stride: 1},
			{Lo: 'a', Hi: 'z', Stride: 1},
			{Lo: 0xC0, Hi: 0xD6, Stride: 1},
			{Lo: 0xD8, Hi: 0xF6, Stride: 1},
			{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
			{Lo: 0x370, Hi: 0x37D, Stride: 1},
			{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
			{Lo: 0x200C, Hi: 0x200D, Stride: 1},
			{Lo: 0x2070, Hi: 0x218F, Stride: 1},
			{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
			{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
			{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
			{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
		},
	}
	nameRest = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: '-', Hi: '.', Stride: 1},
			{Lo: '0', Hi: '9', Stride: 1},
			{Lo: 0xB7, Hi: 0xB7, Stride: 1},
			{Lo: 0x300, Hi: 0x36F, Stride: 1},
			{Lo: 0x203F, Hi: 0x2040, Stride: 1},
		},
	}
)

func isXMLName(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for i, r := range s {
		if unicode.Is(nameStart, r) {
			continue
		}
		if i == 0 || !unicode.Is(nameRest, r) {
			return false
		}
	}
	return true
}

// checkXMLNames reports the first mapping key in v that cannot be used as an
// element name.
func checkXMLNames(v schema.Value) error {
	switch v := v.(type) {
	case schema.Sequence:
		for _, item := range v {
			if err := checkXMLNames(item); err != nil {
				return err
			}
		}
	case *schema.Mapping:
		for _, key := range v.Keys() {
			if !isXMLName(key) {
				return fmt.Errorf("key %q is not a valid XML element name", key)
			}
			child, _ := v.Get(key)
			if err := checkXMLNames(child); err != nil {
				return err
			}
		}
	}
	return nil
}
