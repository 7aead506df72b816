package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doom/internal/platform/tui"
	"github.com/vovakirdan/tui-doom/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal (default: doom).

Controls:
  W/S, Up/Down  - Move forward/backward
  A/D           - Strafe
  Left/Right    - Turn
  Mouse         - Look (after capture)
  Click, F      - Fire (click captures the mouse first)
  M             - Capture mouse
  Space         - Start / restart
  Esc           - Release mouse, then quit
  ?             - Toggle help
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Fewer, slower enemies and more ammo
  normal - Config values as written
  hard   - More enemies hitting harder
  fixed  - Exactly the config, nothing scaled

Examples:
  arcade play
  arcade play doom_classic
  arcade play doom --difficulty hard
  arcade play doom --config ./my-map.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "doom"
	if len(args) == 1 {
		gameID = args[0]
	}
	mustKnowGame(gameID)

	_, closeAudio := openAudio()
	defer closeAudio()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
