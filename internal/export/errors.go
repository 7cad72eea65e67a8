package export

import "fmt"

// Kind classifies export failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMissingSourceData
	KindInvalidFormat
	KindIO
	// KindInvalidData means the scan cannot be written in the requested
	// format, e.g. a key that is not a valid XML element name.
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindMissingSourceData:
		return "missing_source_data"
	case KindInvalidFormat:
		return "invalid_format"
	case KindIO:
		return "io"
	case KindInvalidData:
		return "invalid_data"
	default:
		return "unknown"
	}
}

// Error is returned by every failing export call.
type Error struct {
	Kind Kind
	// Op is the step that failed, e.g. "load" or "append".
	Op string
	// Path is the file involved, if any.
	Path string
	Err  error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrMissingSourceData = &Error{Kind: KindMissingSourceData}
	ErrInvalidFormat     = &Error{Kind: KindInvalidFormat}
	ErrIO                = &Error{Kind: KindIO}
	ErrInvalidData       = &Error{Kind: KindInvalidData}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func ioError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}
