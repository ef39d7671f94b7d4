// Package tui is a read-only status monitor for the daemon, served over SSH.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
)

// Source is what the monitor reads from the daemon.
type Source interface {
	Status() binding.Status
	LayerReports() []profile.LayerReport
	ListProfiles() []profile.ProfileInfo
}

func ShutdownSshServer(s *ssh.Server) {
	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

func NewSshServer(addr string, hostKeyPath string, source Source) (*ssh.Server, error) {
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(source)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Error("Could not create server", "error", err)
		return nil, err
	}

	log.Info("Starting SSH server", "addr", addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
		}
	}()
	return s, nil
}
