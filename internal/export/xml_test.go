package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

func mustParse(t *testing.T, data string) schema.Value {
	t.Helper()
	v, err := schema.Parse([]byte(data))
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	return v
}

func TestRenderXML(t *testing.T) {
	v := mustParse(t, `{"result": {"target": "t", "vulnerabilities": [{"id": 1}]}}`)

	want := strings.Join([]string{
		"<result>",
		"    <target>",
		"        t",
		"    </target>",
		"    <vulnerabilities>",
		"    <vulnerability>",
		"        <id>",
		"            1",
		"        </id>",
		"    </vulnerability>",
		"    </vulnerabilities>",
		"</result>",
	}, "\n")

	if diff := cmp.Diff(want, RenderXML(v)); diff != "" {
		t.Errorf("RenderXML mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderXMLScalars(t *testing.T) {
	tests := []struct {
		name string
		in   schema.Value
		want string
	}{
		{"text is escaped", schema.String(`a<b & "c"`), "a&lt;b &amp; &#34;c&#34;"},
		{"number is verbatim", schema.Scalar{Type: schema.ScalarNumber, Text: "10"}, "10"},
		{"bool is verbatim", schema.Scalar{Type: schema.ScalarBool, Text: "false"}, "false"},
		{"null is empty", schema.Scalar{Type: schema.ScalarNull}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderXML(tt.in); got != tt.want {
				t.Errorf("RenderXML = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderXMLEscapingRoundTrip(t *testing.T) {
	texts := []string{
		"<script>alert(1)</script>",
		"a && b",
		`x > y ? "yes" : 'no'`,
		"select * from users where name='</rule_name>'",
	}

	for _, text := range texts {
		m := schema.NewMapping()
		m.Set("rule_name", schema.String(text))

		var got struct {
			RuleName string `xml:"rule_name"`
		}
		doc := "<result>\n" + RenderXML(m) + "\n</result>"
		if err := xml.Unmarshal([]byte(doc), &got); err != nil {
			t.Fatalf("xml.Unmarshal(%q): %v", doc, err)
		}
		if strings.TrimSpace(got.RuleName) != text {
			t.Errorf("round trip = %q, want %q", strings.TrimSpace(got.RuleName), text)
		}
	}
}

func TestIsXMLName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"rule_name", true},
		{"_private", true},
		{"line-number.v2", true},
		{"漏洞", true},
		{"", false},
		{"cvss score", false},
		{"1st", false},
		{"-x", false},
		{"a<b", false},
		{"ns:tag", false},
		{"bad\xffutf8", false},
	}
	for _, tt := range tests {
		if got := isXMLName(tt.name); got != tt.want {
			t.Errorf("isXMLName(%q) = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestCheckXMLNamesNested(t *testing.T) {
	v := mustParse(t, `{"result": {"vulnerabilities": [{"id": 1, "cvss score": 9.8}]}}`)
	err := checkXMLNames(v)
	if err == nil || !strings.Contains(err.Error(), `"cvss score"`) {
		t.Errorf("checkXMLNames error = %v, want one naming the bad key", err)
	}
	if err := checkXMLNames(mustParse(t, `{"result": {"vulnerabilities": [{"id": 1}]}}`)); err != nil {
		t.Errorf("checkXMLNames on valid names: %v", err)
	}
}
