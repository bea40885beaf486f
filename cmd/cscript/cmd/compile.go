package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cserrors "github.com/tmaxwell/go-cscript/internal/errors"
	"github.com/tmaxwell/go-cscript/internal/ui"
	"github.com/tmaxwell/go-cscript/pkg/cscript"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a CScript source file and report diagnostics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(configPath, args[0])
		if err != nil {
			exitWithError("cannot load config: %v", err)
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("cannot read %s: %v", args[0], err)
		}

		eng := cscript.New()
		eng.Impl().SearchDir = cfg.Compiler.SearchDir
		eng.Impl().ScriptExt = cfg.Compiler.Extension

		script := eng.NewScript(args[0], string(source))
		ok, err := eng.Compile(script)
		if err != nil {
			exitWithError("%v", err)
		}

		for _, d := range script.Diagnostics {
			fmt.Fprintln(os.Stderr, cserrors.Render(d, script.Source, script.Path, cfg.Compiler.Color))
		}

		if !ok {
			fmt.Fprintln(os.Stderr, ui.Error("compilation failed with %d diagnostic(s)", len(script.Diagnostics)))
			os.Exit(1)
		}
		fmt.Println(ui.Success("compiled %s: %d function(s), %d global(s)",
			args[0], len(script.Functions), len(script.Globals)))
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
