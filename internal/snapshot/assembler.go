// Package snapshot composes collector and prober output into immutable
// point-in-time records.
package snapshot

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/collector"
	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/internal/raid"
)

// ResourceCollector samples the OS resource counters.
type ResourceCollector interface {
	Collect(ctx context.Context) collector.Stats
}

// StorageProber reports the storage/RAID subsystem health.
type StorageProber interface {
	Probe(ctx context.Context) models.RaidInfo
}

// Assembler builds one fresh Snapshot per call. It holds no cache and no
// mutable state; the pull server and the push loop each call it on their
// own trigger.
type Assembler struct {
	collector ResourceCollector
	prober    StorageProber
}

func New(c ResourceCollector, p StorageProber) *Assembler {
	return &Assembler{collector: c, prober: p}
}

// NewDefault wires the real gopsutil collector and the platform backend set.
func NewDefault() *Assembler {
	return New(collector.New(), raid.NewProber())
}

// Assemble runs the collector and the prober concurrently and stamps the
// result. It never fails: even when every sub-probe degrades, the snapshot
// still carries hostname and timestamp.
func (a *Assembler) Assemble(ctx context.Context) models.Snapshot {
	var (
		wg    sync.WaitGroup
		stats collector.Stats
		rinfo models.RaidInfo
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats = a.collector.Collect(ctx)
	}()
	go func() {
		defer wg.Done()
		rinfo = a.prober.Probe(ctx)
	}()
	wg.Wait()

	hostname, _ := os.Hostname()
	return models.Snapshot{
		Hostname:          hostname,
		Timestamp:         time.Now().UTC(),
		CPU:               stats.CPU,
		Memory:            stats.Memory,
		Disk:              stats.Disk,
		Disks:             stats.Disks,
		Network:           stats.Network,
		NetworkInterfaces: stats.NetworkInterfaces,
		Load:              stats.Load,
		BootTime:          stats.BootTime,
		Raid:              rinfo,
		Windows:           stats.Windows,
	}
}
