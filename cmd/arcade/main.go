// arcade runs the raycasting shooter in the terminal, in a desktop window
// or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade menu              - Pick a renderer interactively
//	arcade window            - Play in a desktop window
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade config [game]     - Print the default game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path|dsn>       - SQLite path or postgres:// DSN (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//
// Every global flag can also be set as ARCADE_<NAME> in the environment or
// in ~/.arcade/arcade.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-doom/internal/games/doom"
)

var (
	opts   settings
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Doom-style raycaster for your terminal",
	Long: `A first-person raycasting shooter drawn with true-color half blocks in
your terminal, or in a desktop window.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive renderer picker
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play doom
  arcade play doom_classic --difficulty hard
  arcade window
  arcade serve --ssh :2222
  arcade scores doom`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		opts = s

		level, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", s.LogLevel, err)
		}
		logger.SetLevel(level)
		logger.Debug("settings loaded", "fps", s.FPS, "db", s.DBPath, "config", s.ConfigPath, "difficulty", s.Difficulty)

		doom.SetConfigPath(s.ConfigPath)
		doom.SetDifficultyPreset(s.Difficulty)
		return nil
	},
}

func init() {
	defineFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// defineFlags declares the global flags. Their names are also the settings
// keys.
func defineFlags(f *pflag.FlagSet) {
	f.Int("fps", 60, "Tick rate (frames per second)")
	f.Int64("seed", 0, "RNG seed (0 = random based on time)")
	f.String("db", "~/.arcade/scores.db", "Scores database: SQLite path or postgres:// DSN")
	f.String("config", "", "Path to custom game config YAML")
	f.String("difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	f.Bool("mute", false, "Disable sound even when the game config enables it")
	f.String("log-level", "info", "Log level: debug, info, warn, error")
}
