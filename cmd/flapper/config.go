package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration the game would run with, as YAML.

Search order:
  1. --config <path>
  2. ~/.flapper/configs/flappy.yaml
  3. ./configs/flappy.yaml
  4. built-in defaults

The output is a complete config file: redirect it to start customizing.
With --defaults the built-in file is printed as shipped, comments included.

Examples:
  flapper config
  flapper config --defaults
  flapper config > ~/.flapper/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if err := writeConfig(os.Stdout, flagDefaults); err != nil {
		fatal("%v", err)
	}
}

// writeConfig writes either the embedded defaults or the loaded config.
func writeConfig(w io.Writer, defaults bool) error {
	if defaults {
		_, err := w.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
