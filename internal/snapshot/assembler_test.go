package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/collector"
	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/stretchr/testify/assert"
)

type stubCollector struct {
	stats collector.Stats
}

func (s *stubCollector) Collect(ctx context.Context) collector.Stats { return s.stats }

type stubProber struct {
	info models.RaidInfo
}

func (s *stubProber) Probe(ctx context.Context) models.RaidInfo { return s.info }

func TestAssembleStampsHostnameAndTimestamp(t *testing.T) {
	// Every sub-probe degraded to zero values: the snapshot must still be
	// identified by (hostname, timestamp).
	a := New(&stubCollector{}, &stubProber{})

	before := time.Now().UTC()
	snap := a.Assemble(context.Background())
	after := time.Now().UTC()

	assert.NotEmpty(t, snap.Hostname)
	assert.False(t, snap.Timestamp.Before(before))
	assert.False(t, snap.Timestamp.After(after))
	assert.False(t, snap.Raid.HasRaid)
}

func TestAssembleCarriesBothContributions(t *testing.T) {
	controller := "megacli"
	a := New(
		&stubCollector{stats: collector.Stats{
			CPU:    models.CPUStats{Percent: 42.5, CoreCount: 8},
			Memory: models.MemoryStats{Percent: 61.2, Total: 32 << 30},
		}},
		&stubProber{info: models.RaidInfo{
			HasRaid:    true,
			Controller: &controller,
			Arrays:     []models.Array{{Name: "vd0", Status: "Optimal", Healthy: true}},
		}},
	)

	snap := a.Assemble(context.Background())

	assert.Equal(t, 42.5, snap.CPU.Percent)
	assert.Equal(t, 8, snap.CPU.CoreCount)
	assert.True(t, snap.Raid.HasRaid)
	assert.Equal(t, "vd0", snap.Raid.Arrays[0].Name)
}

func TestAssembleProducesIndependentSnapshots(t *testing.T) {
	a := New(&stubCollector{}, &stubProber{})

	first := a.Assemble(context.Background())
	second := a.Assemble(context.Background())

	// No shared cache: each trigger produces its own record.
	assert.False(t, second.Timestamp.Before(first.Timestamp))
}
