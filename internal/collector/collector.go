package collector

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// cpuMu serializes the CPU sampling window. The pull server and the push
// loop both collect independently; overlapping interval samples would skew
// both readings, so only one sampling window may be open at a time.
var cpuMu sync.Mutex

// Stats is the resource portion of a snapshot, before hostname and
// timestamp are stamped on by the assembler.
type Stats struct {
	CPU               models.CPUStats
	Memory            models.MemoryStats
	Disk              models.DiskStats
	Disks             []models.PartitionUsage
	Network           models.NetworkCounters
	NetworkInterfaces map[string]models.NetworkCounters
	Load              models.LoadStats
	BootTime          time.Time
	Windows           *models.WindowsInfo
}

type Collector struct {
	cpuWindow time.Duration
}

func New() *Collector {
	return &Collector{cpuWindow: time.Second}
}

// Collect samples every resource domain. Individual query failures leave
// the corresponding block zeroed; Collect itself never fails.
func (c *Collector) Collect(ctx context.Context) Stats {
	var stats Stats
	stats.CPU = c.collectCPU(ctx)
	stats.Memory = collectMemory(ctx)
	stats.Disk, stats.Disks = collectDisks(ctx)
	stats.Network, stats.NetworkInterfaces = collectNetwork(ctx)
	stats.Load = collectLoad(ctx)
	if bt, err := host.BootTimeWithContext(ctx); err == nil {
		stats.BootTime = time.Unix(int64(bt), 0).UTC()
	}
	if runtime.GOOS == "windows" {
		stats.Windows = collectWindows(ctx)
	}
	return stats
}

func (c *Collector) collectCPU(ctx context.Context) models.CPUStats {
	var stats models.CPUStats
	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CoreCount = cores
	}
	// Interval-based sampling blocks for the window on purpose: it needs no
	// cross-call state, at the price of latency.
	cpuMu.Lock()
	percents, err := cpu.PercentWithContext(ctx, c.cpuWindow, false)
	cpuMu.Unlock()
	if err != nil {
		logger.Log.Warn("cpu sampling failed", "err", err)
		return stats
	}
	if len(percents) > 0 {
		stats.Percent = percents[0]
	}
	return stats
}

func collectMemory(ctx context.Context) models.MemoryStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		logger.Log.Warn("memory query failed", "err", err)
		return models.MemoryStats{}
	}
	return models.MemoryStats{
		Percent:   vm.UsedPercent,
		Total:     vm.Total,
		Used:      vm.Used,
		Available: vm.Available,
	}
}

func collectDisks(ctx context.Context) (models.DiskStats, []models.PartitionUsage) {
	var root models.DiskStats
	if usage, err := disk.UsageWithContext(ctx, rootPath()); err == nil {
		root = models.DiskStats{
			Percent: usage.UsedPercent,
			Total:   usage.Total,
			Used:    usage.Used,
			Free:    usage.Free,
		}
	} else {
		logger.Log.Warn("root volume query failed", "err", err)
	}

	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		logger.Log.Warn("partition enumeration failed", "err", err)
		return root, nil
	}
	var parts []models.PartitionUsage
	for _, p := range partitions {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			// Unreachable mountpoints (stale network shares) are skipped.
			logger.Log.Warn("partition query failed", "mountpoint", p.Mountpoint, "err", err)
			continue
		}
		parts = append(parts, models.PartitionUsage{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			Percent:    usage.UsedPercent,
			Total:      usage.Total,
			Used:       usage.Used,
		})
	}
	return root, parts
}

func collectNetwork(ctx context.Context) (models.NetworkCounters, map[string]models.NetworkCounters) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		logger.Log.Warn("network counter query failed", "err", err)
		return models.NetworkCounters{}, nil
	}
	var total models.NetworkCounters
	perNIC := make(map[string]models.NetworkCounters, len(counters))
	for _, c := range counters {
		nic := models.NetworkCounters{
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
		}
		perNIC[c.Name] = nic
		total.BytesSent += nic.BytesSent
		total.BytesRecv += nic.BytesRecv
		total.PacketsSent += nic.PacketsSent
		total.PacketsRecv += nic.PacketsRecv
	}
	return total, perNIC
}

func collectLoad(ctx context.Context) models.LoadStats {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		// Zero-filled where the OS has no load averages, to keep the
		// schema stable across platforms.
		return models.LoadStats{}
	}
	return models.LoadStats{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		return "C:\\"
	}
	return "/"
}
