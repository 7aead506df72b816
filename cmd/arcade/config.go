package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the default game config",
	Long: `Print the built-in YAML config of a game (default: doom). Save it, edit
it and pass it back with --config, or drop it at ~/.arcade/configs/doom.yaml.

Examples:
  arcade config > my-map.yaml
  arcade play doom --config my-map.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		gameID := "doom"
		if len(args) == 1 {
			gameID = args[0]
		}
		data := config.GetDefaultYAML(gameID)
		if data == nil {
			fmt.Fprintf(os.Stderr, "Error: no config for game %q\n", gameID)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	},
}
