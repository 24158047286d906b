// Package pusher transmits snapshots to the central collector on a fixed
// cadence. Failures are logged and dropped; the next attempt happens at the
// next scheduled tick, with no retry or backoff in between.
package pusher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/config"
	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
)

const pushPath = "/api/v1/agents/metrics"

// Assembler produces one fresh snapshot per call.
type Assembler interface {
	Assemble(ctx context.Context) models.Snapshot
}

type Pusher struct {
	cfg       *config.Config
	assembler Assembler
	client    *http.Client
}

func New(cfg *config.Config, assembler Assembler) *Pusher {
	return &Pusher{
		cfg:       cfg,
		assembler: assembler,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Run loops until the context is cancelled. The interval is re-read every
// tick so a config reload takes effect without restart. Success and failure
// are treated identically by the schedule.
func (p *Pusher) Run(ctx context.Context) {
	if p.cfg.ServerURL() == "" {
		logger.Log.Info("no server URL configured, push loop disabled")
		return
	}
	logger.Log.Info("push loop started", "interval", p.cfg.PushInterval().String())
	timer := time.NewTimer(p.cfg.PushInterval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("push loop stopped")
			return
		case <-timer.C:
		}
		snap := p.assembler.Assemble(ctx)
		if err := p.Send(ctx, &snap); err != nil {
			logger.Log.Error("metrics push failed", "err", err, "timestamp", snap.Timestamp)
		}
		timer.Reset(p.cfg.PushInterval())
	}
}

// Send posts one snapshot. Any non-2xx response counts as failure.
func (p *Pusher) Send(ctx context.Context, snap *models.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	url := strings.TrimRight(p.cfg.ServerURL(), "/") + pushPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := p.cfg.APIKey(); key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push rejected with status %d", resp.StatusCode)
	}
	return nil
}
