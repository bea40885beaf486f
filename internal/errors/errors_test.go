package errors

import (
	"strings"
	"testing"

	"github.com/tmaxwell/go-cscript/internal/engine"
)

func TestRenderPointsAtOffset(t *testing.T) {
	source := "int x = ;\nint y = 2;"
	d := engine.Diagnostic{
		Severity: engine.Error,
		Code:     "UnexpectedToken",
		Offset:   8,
		Message:  "unexpected token",
	}

	out := Render(d, source, "main.csl", false)

	if !strings.Contains(out, "main.csl:1:9") {
		t.Errorf("missing location header:\n%s", out)
	}
	if !strings.Contains(out, "int x = ;") {
		t.Errorf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret:\n%s", out)
	}
	if !strings.Contains(out, "[UnexpectedToken]") {
		t.Errorf("missing code:\n%s", out)
	}
}

func TestRenderWithoutFile(t *testing.T) {
	d := engine.Diagnostic{Severity: engine.Warning, Code: "W", Offset: 0, Message: "m"}
	out := Render(d, "x", "", false)
	if !strings.Contains(out, "Warning at line 1:1") {
		t.Errorf("header:\n%s", out)
	}
}

func TestRenderColor(t *testing.T) {
	d := engine.Diagnostic{Severity: engine.Error, Code: "E", Offset: 0, Message: "m"}
	out := Render(d, "boom", "f.csl", true)
	if !strings.Contains(out, "\033[1;31m") {
		t.Error("expected ANSI colors")
	}
}
