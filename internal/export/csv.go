package export

import (
	"encoding/csv"
	"encoding/json"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

const targetColumn = "target"

// csvHeader puts target first, followed by the remaining keys of the first
// finding in insertion order.
func csvHeader(first *schema.Mapping) []string {
	header := []string{targetColumn}
	for _, key := range first.Keys() {
		if key != targetColumn {
			header = append(header, key)
		}
	}
	return header
}

func csvRow(header []string, target string, f *schema.Mapping) []string {
	row := make([]string, len(header))
	for i, col := range header {
		if col == targetColumn {
			row[i] = target
			continue
		}
		row[i] = cellText(f, col)
	}
	return row
}

// cellText flattens nested values to compact JSON.
func cellText(f *schema.Mapping, key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	if s, ok := v.(schema.Scalar); ok {
		return s.String()
	}
	data, err := json.Marshal(toJSON(v))
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteCSV writes one row per finding to path, with target injected into
// every row. A new file gets a header row first; an existing file is only
// appended to and its header is assumed to match. Keys missing from a
// finding become empty cells; keys absent from the first finding are
// dropped. An empty finding list writes nothing.
func WriteCSV(fs afero.Fs, path, target string, findings []*schema.Mapping) (err error) {
	if len(findings) == 0 {
		return nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return ioError("stat", path, err)
	}

	flags := os.O_WRONLY | os.O_APPEND
	if !exists {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := fs.OpenFile(path, flags, 0644)
	if err != nil {
		return ioError("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, ioError("close", path, cerr))
		}
	}()

	header := csvHeader(findings[0])
	w := csv.NewWriter(f)
	w.UseCRLF = true
	if !exists {
		if err := w.Write(header); err != nil {
			return ioError("write", path, err)
		}
	}
	for _, finding := range findings {
		if err := w.Write(csvRow(header, target, finding)); err != nil {
			return ioError("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ioError("write", path, err)
	}
	return nil
}
