package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/tmaxwell/go-cscript/internal/ast"
)

type outlineDumper struct {
	sb    *strings.Builder
	depth int
}

func (d *outlineDumper) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		d.depth--
		return nil
	}
	fmt.Fprintf(d.sb, "%s%T %q\n", strings.Repeat("  ", d.depth), n, n.TokenLiteral())
	d.depth++
	return d
}

func outline(t *testing.T, source string) string {
	t.Helper()
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var sb strings.Builder
	ast.Walk(&outlineDumper{sb: &sb}, tree.Root)
	return sb.String()
}

// Snapshot fixtures covering each statement and declaration family; the
// stored snapshots pin the AST shape against parser regressions.
func TestParserSnapshots(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{"expressions", `int x = (1 + 2) * f(a, b.c[0]) - -y;`},
		{"control_flow", `void main() {
  for (int i = 0; i < 3; i++) {
    if (i == 1) continue; else break;
  }
  while (x < 4) { x = x + 1; }
  return;
}`},
		{"class", `class Line : Shape {
public:
  Line(int len) : length(len) { }
  ~Line() { }
  virtual double area() const { return 0.0; }
private:
  int length;
};`},
		{"templates", `template<typename T, int N> class grid { };
template<typename T> class grid<T, 0> { };`},
		{"lambda", `auto f = [a, &b](int x){ return x + a; };`},
		{"namespaces", `namespace geo {
  typedef double scalar;
  enum Axis { X, Y };
  scalar origin = 0.0;
}
using namespace geo;`},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, outline(t, fx.source))
		})
	}
}
