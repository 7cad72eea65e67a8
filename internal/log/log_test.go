package log

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestDefaultLoggerDebugGate(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	flags := log.Flags()
	log.SetFlags(0)
	defer log.SetFlags(flags)

	quiet := &DefaultLogger{}
	quiet.Debugf("hidden %d", 1)
	quiet.Info("Vulnerabilities\n+----+")

	loud := &DefaultLogger{Verbose: true}
	loud.Debug("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug output leaked without Verbose: %q", got)
	}
	if !strings.Contains(got, "[INFO] Vulnerabilities\n+----+") {
		t.Errorf("info output not written verbatim: %q", got)
	}
	if !strings.Contains(got, "[DEBUG] shown") {
		t.Errorf("verbose debug output missing: %q", got)
	}
}

func TestSetLogger(t *testing.T) {
	prev := Default()
	defer SetLogger(prev)

	l := &DefaultLogger{Verbose: true}
	SetLogger(l)
	if Default() != l {
		t.Errorf("Default() did not return the logger passed to SetLogger")
	}
}
