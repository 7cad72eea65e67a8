// Package export renders stored scan results to the console or to JSON, XML
// and CSV files that grow by one scan per call.
package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/log"
	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
	"github.com/yorozuya-cybersecurity/yorosec-export/internal/store"
)

// Format selects the output representation.
type Format string

const (
	FormatTable Format = ""
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatCSV   Format = "csv"
)

// ParseFormat accepts "", json, xml and csv in any letter case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatXML, FormatCSV:
		return f, nil
	}
	return "", &Error{Kind: KindInvalidFormat, Op: "parse format", Err: fmt.Errorf("unknown output format %q", s)}
}

// Config is the explicit configuration of an Exporter.
type Config struct {
	// OutputDir is the root that relative destination paths resolve against.
	// Empty means the working directory.
	OutputDir string
	// Logger receives the console table. Defaults to the process logger.
	Logger log.Logger
}

// Request describes one export call.
type Request struct {
	ScanID string
	// Target, when set, replaces the target stored with the scan.
	Target string
	Format string
	// Path is the destination file for json, xml and csv.
	Path string
}

// Exporter loads scan results from a store and writes them out.
type Exporter struct {
	store  store.Store
	fs     afero.Fs
	cfg    Config
	logger log.Logger
}

// New returns an Exporter reading from st and writing to fs.
func New(st store.Store, fs afero.Fs, cfg Config) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{store: st, fs: fs, cfg: cfg, logger: logger}
}

// Export renders the scan named by req.ScanID in the requested format. An
// unknown format fails before the store or any file is touched.
func (e *Exporter) Export(ctx context.Context, req Request) error {
	format, err := ParseFormat(req.Format)
	if err != nil {
		return err
	}

	var path string
	if format != FormatTable {
		if path, err = e.resolve(req.Path); err != nil {
			return err
		}
	}

	rec, err := e.load(ctx, req.ScanID, req.Target)
	if err != nil {
		return err
	}

	switch format {
	case FormatTable:
		e.logger.Info("Vulnerabilities\n" + RenderTable(rec.Findings()))
		return nil
	case FormatJSON:
		rendering, err := RenderJSON(rec.Root())
		if err != nil {
			return &Error{Kind: KindUnknown, Op: "render json", Err: err}
		}
		return e.appendDocument(path, JSONDocument, rendering)
	case FormatXML:
		wrapped := schema.NewMapping()
		wrapped.Set("result", rec.Root())
		if err := checkXMLNames(wrapped); err != nil {
			return &Error{Kind: KindInvalidData, Op: "render xml", Path: path, Err: err}
		}
		return e.appendDocument(path, XMLDocument, RenderXML(wrapped))
	case FormatCSV:
		findings := rec.Findings()
		if len(findings) == 0 {
			e.logger.Infof("no findings to write to %s", path)
			return nil
		}
		if err := e.mkdir(path); err != nil {
			return err
		}
		if err := WriteCSV(e.fs, path, rec.Target(), findings); err != nil {
			return err
		}
		e.logger.Infof("exported %d findings of scan %s to %s", len(findings), req.ScanID, path)
		return nil
	}
	return nil
}

func (e *Exporter) mkdir(path string) error {
	dir := filepath.Dir(path)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return ioError("mkdir", dir, err)
	}
	return nil
}

func (e *Exporter) appendDocument(path string, doc Document, rendering string) error {
	if err := e.mkdir(path); err != nil {
		return err
	}
	created, err := AppendDocument(e.fs, path, doc, rendering)
	if err != nil {
		return err
	}
	if created {
		e.logger.Infof("created %s results file %s", doc.Name, path)
	} else {
		e.logger.Infof("appended result to %s", path)
	}
	return nil
}

// load resolves sid to a record, applying the target override.
func (e *Exporter) load(ctx context.Context, sid, target string) (*schema.ScanResultRecord, error) {
	data, err := e.store.Load(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Error{Kind: KindMissingSourceData, Op: "load", Err: err}
	}
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "load", Err: err}
	}

	if target != "" {
		if data, err = schema.WithTarget(data, target); err != nil {
			return nil, &Error{Kind: KindMissingSourceData, Op: "decode", Err: err}
		}
	}
	rec, err := schema.ParseRecord(data)
	if err != nil {
		return nil, &Error{Kind: KindMissingSourceData, Op: "decode", Err: err}
	}
	return rec, nil
}

// resolve anchors relative paths at OutputDir.
func (e *Exporter) resolve(path string) (string, error) {
	if path == "" {
		return "", &Error{Kind: KindIO, Op: "resolve", Err: errors.New("destination path is required")}
	}
	if !filepath.IsAbs(path) && e.cfg.OutputDir != "" {
		path = filepath.Join(e.cfg.OutputDir, path)
	}
	return path, nil
}
