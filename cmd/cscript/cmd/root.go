package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cscript",
	Short: "CScript compiler front-end",
	Long: `go-cscript is a Go implementation of the CScript compiler front-end.

CScript is a statically typed, C++-like embedded scripting language with:
  - Namespaces, classes with inheritance and virtual dispatch
  - Class and function templates with specialization
  - Operator overloading and user-defined literals
  - Lambdas with captures

The front-end tokenizes and parses source text, then lowers it into a
typed program tree ready for interpretation by an embedding host.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("config", "", "path to cscript.toml")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
