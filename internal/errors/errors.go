// Package errors formats compiler diagnostics with source context,
// line/column information and a caret pointing at the error location.
package errors

import (
	"fmt"
	"strings"

	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Render formats one diagnostic against its source buffer. If color is
// true, ANSI color codes are used for terminal output.
func Render(d engine.Diagnostic, source, file string, color bool) string {
	var sb strings.Builder

	pos := token.Locate(source, d.Offset)

	if file != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", capitalize(d.Severity.String()), file, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", capitalize(d.Severity.String()), pos.Line, pos.Column)
	}

	if line := sourceLine(source, pos.Line); line != "" {
		lineNum := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNum)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNum)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString("[")
	sb.WriteString(d.Code)
	sb.WriteString("] ")
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
