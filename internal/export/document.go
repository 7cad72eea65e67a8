package export

import (
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Document is the fixed wrapper of a results file that grows by one record
// per export.
type Document struct {
	Name     string
	Prologue string
	Epilogue string
	// Separator precedes every record after the first.
	Separator string
}

var (
	JSONDocument = Document{
		Name:      "json",
		Prologue:  "{\"results\":[\n",
		Epilogue:  "\n]}",
		Separator: ",\n",
	}
	XMLDocument = Document{
		Name:      "xml",
		Prologue:  "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<results>\n",
		Epilogue:  "\n</results>\n",
		Separator: "\n",
	}
)

// AppendDocument adds rendering to the document at path. A missing or
// blank file is created with the prologue and epilogue around the record.
// Otherwise the whole file is read, the record is spliced in front of the
// closing line and the file is rewritten, so it stays a complete document
// after every call.
func AppendDocument(fs afero.Fs, path string, doc Document, rendering string) (created bool, err error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, ioError("stat", path, err)
	}

	var lines []string
	if exists {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return false, ioError("read", path, err)
		}
		lines = splitLines(string(data))
	}

	closing := closingLine(lines)
	if closing < 0 {
		if err := writeFile(fs, path, doc.Prologue+rendering+doc.Epilogue); err != nil {
			return false, err
		}
		return true, nil
	}

	segment := doc.Separator + rendering + "\n"
	spliced := make([]string, 0, len(lines)+1)
	spliced = append(spliced, lines[:closing]...)
	spliced = append(spliced, segment)
	spliced = append(spliced, lines[closing:]...)

	if err := writeFile(fs, path, strings.Join(spliced, "")); err != nil {
		return false, err
	}
	return false, nil
}

// splitLines splits s after each newline, keeping the terminators.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// closingLine returns the index of the last non-blank line, or -1.
func closingLine(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

func writeFile(fs afero.Fs, path, content string) (err error) {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return ioError("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, ioError("close", path, cerr))
		}
	}()

	if _, err := f.WriteString(content); err != nil {
		return ioError("write", path, err)
	}
	return nil
}
