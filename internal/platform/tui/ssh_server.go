package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// shutdownGrace bounds how long Serve waits for sessions after ctx ends.
const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the multi-user SSH host.
type SSHServerConfig struct {
	// Address to listen on, host:port.
	Address string

	// HostKeyPath is generated on first start when missing. Empty means
	// ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the shared scores database: a SQLite path or a postgres:// DSN.
	DBPath string

	TickRate int

	// Seed fixes the world of every session when non-zero.
	Seed int64

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger

	// IdleTimeout disconnects sessions without traffic.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns the settings used by "arcade serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the renderer menu and the game to every SSH connection.
// All sessions share one score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer prepares the host key, the score store and the wish server.
// A store that cannot be opened only disables score keeping.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "doom-ssh"})
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		srv.store = nil
	}

	// Middleware runs last to first: track, then require a PTY, then play.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newSession),
			activeterm.Middleware(),
			srv.track,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the key path to use and makes sure its directory
// exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the program state of one connection, sized to its PTY.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     s.config.Seed,
	}

	model := NewSessionModel(s.store, cfg, sess.User(), s.logger.With("remote", sess.RemoteAddr().String()))
	model.renderer = bubbletea.MakeRenderer(sess)
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}

// track logs connects and disconnects with the session count and duration.
func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		began := time.Now()
		n := s.active.Add(1)
		s.logger.Info("connect", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)

		defer func() {
			n := s.active.Add(-1)
			s.logger.Info("disconnect", "user", sess.User(),
				"duration", time.Since(began).Round(time.Second), "active", n)
		}()
		next(sess)
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address, "scores", s.store != nil)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for open sessions up to a
// grace period.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores", "error", err)
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
