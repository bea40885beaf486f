package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/parser"
	"github.com/tmaxwell/go-cscript/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a CScript source file and dump the AST",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("cannot read %s: %v", args[0], err)
		}

		tree, err := parser.Parse(string(source))
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.Error("%v", err))
			os.Exit(1)
		}

		fmt.Println(ui.Header("AST"))
		fmt.Print(DumpAST(tree))
	},
}

type astDumper struct {
	sb    *strings.Builder
	depth int
}

func (d *astDumper) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		d.depth--
		return nil
	}
	fmt.Fprintf(d.sb, "%s%T %q\n", strings.Repeat("  ", d.depth), n, n.TokenLiteral())
	d.depth++
	return d
}

// DumpAST renders an indented outline of the tree.
func DumpAST(tree *ast.AST) string {
	var sb strings.Builder
	ast.Walk(&astDumper{sb: &sb}, tree.Root)
	return sb.String()
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
