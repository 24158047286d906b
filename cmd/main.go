package main

import (
	"fmt"
	"os"

	"github.com/ajjs1ajjs/Monitoring/internal/config"
	"github.com/ajjs1ajjs/Monitoring/internal/daemon"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	"github.com/fatih/color"
)

func main() {
	cfg := config.New()
	logger.Init(cfg.LogFile())

	app := daemon.NewApplication(cfg)
	manager := daemon.NewManager(cfg, app)

	color.Green("monitoring agent starting")
	fmt.Printf("  pull endpoint  :%d (/metrics, /health, /api/metrics, /ws)\n", cfg.ListenPort())
	if cfg.ServerURL() != "" {
		fmt.Printf("  push target    %s every %s\n", cfg.ServerURL(), cfg.PushInterval())
	} else {
		color.Yellow("  push disabled (no SERVER_URL)")
	}

	if err := manager.Run(); err != nil {
		logger.Log.Error("service run failed", "err", err)
		color.Red("agent exited with error: %v", err)
		os.Exit(1)
	}
}
