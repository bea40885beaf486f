package cmd

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the project configuration loaded from cscript.toml.
type Config struct {
	Compiler CompilerConfig `toml:"compiler"`
}

// CompilerConfig holds front-end settings.
type CompilerConfig struct {
	SearchDir string `toml:"search_dir"`
	Extension string `toml:"extension"`
	Color     bool   `toml:"color"`
}

func defaultConfig() Config {
	return Config{Compiler: CompilerConfig{Extension: ".csl", Color: true}}
}

// loadConfig reads cscript.toml from the given path, the current directory
// or the source file's directory; when no path is given, a missing file
// yields the defaults, while a missing explicitly given path is an error.
func loadConfig(explicit, sourcePath string) (Config, error) {
	cfg := defaultConfig()

	candidates := []string{}
	if explicit != "" {
		candidates = append(candidates, explicit)
	} else {
		candidates = append(candidates, "cscript.toml")
		if sourcePath != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(sourcePath), "cscript.toml"))
		}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if explicit != "" {
				return cfg, err
			}
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
		break
	}
	return cfg, nil
}
