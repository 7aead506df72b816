package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/platform/tui"
	"github.com/vovakirdan/tui-doom/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a renderer interactively",
	Long: `Show the renderer picker. After a game ends you return to the menu.
Press Tab in the menu to browse the scoreboard.`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, closeAudio := openAudio()
	defer closeAudio()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = result.Config

		switch result.Choice {
		case tui.MenuQuit:
			return

		case tui.MenuScores:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !back {
				return
			}

		case tui.MenuPlay:
			game, err := registry.Create(result.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				os.Exit(1)
			}
			if err := tui.Run(game, store, cfg, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				os.Exit(1)
			}
		}
	}
}
