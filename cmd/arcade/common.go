package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-doom/internal/audio"
	"github.com/vovakirdan/tui-doom/internal/audio/speaker"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// runtimeConfig sizes the game to the current terminal. A zero seed is
// replaced by the clock.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}

	cfg.TickRate = opts.FPS
	cfg.Seed = opts.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// openStore opens the scores database. Games run without one, so a failure
// is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(opts.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "db", opts.DBPath, "err", err)
		return nil
	}
	logger.Debug("scores database open", "driver", store.Driver())
	return store
}

// openAudio routes game sounds to the speaker when the game config asks for
// it. The returned func releases the device.
func openAudio() (audio.Sink, func()) {
	if opts.Mute {
		return audio.Nop{}, func() {}
	}
	cfg, err := doom.LoadConfig()
	if err != nil || !cfg.Audio.Enabled {
		return audio.Nop{}, func() {}
	}

	sink := speaker.OpenOrNop(cfg.Audio.Volume, logger)
	doom.SetAudioSink(sink)
	return sink, func() {
		doom.SetAudioSink(nil)
		if s, ok := sink.(*speaker.Sink); ok {
			s.Close()
		}
	}
}

// mustKnowGame exits when id is not registered.
func mustKnowGame(id string) {
	if registry.Exists(id) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
	fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
	os.Exit(1)
}
