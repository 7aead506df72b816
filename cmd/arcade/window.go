package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/platform/window"
	"github.com/vovakirdan/tui-doom/internal/raycast"
)

var flagClassic bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window with real key releases and a
locked pointer for mouse look.

Controls:
  W/S, Up/Down  - Move forward/backward
  A/D           - Strafe
  Left/Right    - Turn
  Click         - Capture the pointer, then fire
  F             - Fire
  Space         - Start / restart
  Tab           - Toggle minimap
  Esc           - Release pointer, then quit

Examples:
  arcade window
  arcade window --classic --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagClassic, "classic", false, "Use the fixed-step ray march")
}

func runWindow(_ *cobra.Command, _ []string) {
	gameID, title, caster := "doom", "Doom", raycast.CasterDDA
	if flagClassic {
		gameID, title, caster = "doom_classic", "Doom (Classic)", raycast.CasterMarch
	}

	cfg, err := doom.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	opt, err := doom.Options(cfg, caster, runtimeConfig().Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sink, closeAudio := openAudio()
	defer closeAudio()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	g, err := window.New(opt, sink, window.Config{
		Title:  title,
		GameID: gameID,
		TPS:    opts.FPS,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := window.Run(g); err != nil {
		logger.Error("window closed with error", "err", err)
	}
}
