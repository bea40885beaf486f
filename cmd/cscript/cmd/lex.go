package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmaxwell/go-cscript/internal/lexer"
	"github.com/tmaxwell/go-cscript/internal/ui"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a CScript source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("cannot read %s: %v", args[0], err)
		}

		toks, lexErr := lexer.Tokenize(string(source))
		for _, t := range toks {
			fmt.Printf("%6d  %-20s %q\n", t.Offset, fmt.Sprintf("kind(%d)", t.Kind), t.Text)
		}
		if lexErr != nil {
			fmt.Fprintln(os.Stderr, ui.Error("%v", lexErr))
			os.Exit(1)
		}
		fmt.Println(ui.Muted("%d tokens", len(toks)))
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
