// internal/app/system/viewdata/viewdata_test.go
package viewdata_test

import (
	"strings"
	"testing"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
)

func TestSafeHTMLStripsScripts(t *testing.T) {
	in := `Sentinel v2.4.1 <b>is live</b><script>alert("x")</script>`
	out := string(viewdata.SafeHTML(in))

	if strings.Contains(out, "<script") || strings.Contains(out, "alert") {
		t.Errorf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<b>is live</b>") {
		t.Errorf("benign markup was stripped: %q", out)
	}
	if !strings.Contains(out, "Sentinel v2.4.1") {
		t.Errorf("text content was lost: %q", out)
	}
}

func TestSafeHTMLEmpty(t *testing.T) {
	if got := viewdata.SafeHTML(""); got != "" {
		t.Errorf("SafeHTML(\"\") = %q, want empty", got)
	}
}
