package daemon

import (
	"context"
	"os"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/config"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	kardianos "github.com/kardianos/service"
)

// Manager runs the application under the OS service manager (or in the
// foreground when started interactively) and owns the root context both
// activities shut down through.
type Manager struct {
	cfg       *config.Config
	app       *Application
	appCtx    context.Context
	appCancel context.CancelFunc
}

func NewManager(cfg *config.Config, app *Application) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:       cfg,
		app:       app,
		appCtx:    ctx,
		appCancel: cancel,
	}
}

func (m *Manager) newService() (kardianos.Service, error) {
	return kardianos.New(m, &kardianos.Config{
		Name:        m.cfg.ServiceName(),
		DisplayName: m.cfg.ServiceDisplayName(),
		Description: m.cfg.ServiceDescription(),
	})
}

// kardianos.Interface implementation

func (m *Manager) Start(s kardianos.Service) error {
	logger.Log.Info("starting service", "service", s.String(), "platform", s.Platform())
	go func() {
		if err := m.app.Run(m.appCtx); err != nil {
			// Startup resource acquisition failed; the process must die
			// rather than run without its listener.
			logger.Log.Error("agent failed to start", "err", err)
			os.Exit(1)
		}
	}()
	return nil
}

func (m *Manager) Stop(s kardianos.Service) error {
	logger.Log.Info("stopping service", "service", s.String())
	m.appCancel()
	// Best-effort drain: do not hold the service manager hostage to an
	// in-flight collection.
	select {
	case <-m.app.Done():
	case <-time.After(shutdownDrain + time.Second):
		logger.Log.Warn("shutdown drain timed out")
	}
	return nil
}

// Run hands control to the service runtime until the agent stops.
func (m *Manager) Run() error {
	s, err := m.newService()
	if err != nil {
		return err
	}
	return s.Run()
}
