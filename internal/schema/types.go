package schema

// Value is a node of a decoded scan result tree. It is one of Sequence,
// *Mapping or Scalar.
type Value interface {
	isValue()
}

// Sequence is an ordered list of values
type Sequence []Value

// ScalarType tells how a Scalar's text should be read.
type ScalarType uint8

const (
	ScalarNull ScalarType = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is a leaf value. Text holds the decoded string for ScalarString and
// the JSON literal for numbers and booleans.
type Scalar struct {
	Type ScalarType
	Text string
}

// String returns the scalar as it should appear in text output.
func (s Scalar) String() string {
	if s.Type == ScalarNull {
		return ""
	}
	return s.Text
}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func (Sequence) isValue() {}
func (Scalar) isValue()   {}
func (*Mapping) isValue() {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores v under key. A key that already exists keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Text returns the string form of a scalar under key, or "" when the key is
// missing or holds a nested value.
func (m *Mapping) Text(key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(Scalar)
	if !ok {
		return ""
	}
	return s.String()
}

// String builds a text scalar.
func String(s string) Scalar {
	return Scalar{Type: ScalarString, Text: s}
}

// ScanResultRecord is a read-only view over one decoded scan result.
type ScanResultRecord struct {
	root     *Mapping
	findings []*Mapping
}

// Root returns the whole record as a mapping.
func (r *ScanResultRecord) Root() *Mapping { return r.root }

// Target returns the identifier of what was scanned.
func (r *ScanResultRecord) Target() string { return r.root.Text("target") }

// Findings returns the vulnerabilities in record order.
func (r *ScanResultRecord) Findings() []*Mapping { return r.findings }
