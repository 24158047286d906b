package daemon

import (
	"context"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/config"
	"github.com/ajjs1ajjs/Monitoring/internal/pusher"
	"github.com/ajjs1ajjs/Monitoring/internal/server"
	"github.com/ajjs1ajjs/Monitoring/internal/snapshot"
	"github.com/ajjs1ajjs/Monitoring/internal/watcher"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
)

const shutdownDrain = 5 * time.Second

// Application owns the two independently scheduled activities: the pull
// server and the push loop. They share nothing but the side-effect-free
// assembler.
type Application struct {
	cfg    *config.Config
	server *server.Server
	pusher *pusher.Pusher
	done   chan struct{}
}

func NewApplication(cfg *config.Config) *Application {
	assembler := snapshot.NewDefault()
	return &Application{
		cfg:    cfg,
		server: server.New(cfg.ListenPort(), assembler, cfg.PushInterval),
		pusher: pusher.New(cfg, assembler),
		done:   make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled. A listener bind failure is returned
// and must terminate the process; no fallback port is attempted.
func (app *Application) Run(ctx context.Context) error {
	defer close(app.done)

	if w, err := watcher.New(app.cfg.EnvFile(), app.cfg.Reload, ctx); err != nil {
		logger.Log.Warn("config watcher unavailable", "err", err)
	} else if err := w.Start(); err != nil {
		logger.Log.Warn("failed to start config watcher", "err", err)
	} else {
		defer w.Stop()
	}

	if err := app.server.Start(); err != nil {
		return err
	}

	// Blocks until shutdown; the pull server keeps answering concurrently.
	// When push is disabled the loop returns at once, so wait on the
	// context as well before tearing the listener down.
	app.pusher.Run(ctx)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDrain)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warn("listener shutdown incomplete", "err", err)
	}
	return nil
}

// Done is closed once Run has fully unwound.
func (app *Application) Done() <-chan struct{} {
	return app.done
}
