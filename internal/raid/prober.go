package raid

import (
	"context"
	"runtime"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
)

// Prober runs every known backend in a fixed order and merges their
// contributions. Sub-probe failures are logged and dropped; Probe itself
// never fails.
type Prober struct {
	backends []Backend
	smart    smartMonitor
}

func NewProber() *Prober {
	var backends []Backend
	if runtime.GOOS == "windows" {
		backends = []Backend{
			newStorageSpaces(),
			newMegaCLI(),
			newStorCLI(),
		}
	} else {
		backends = []Backend{
			&mdadmBackend{mdstatPath: "/proc/mdstat"},
			newMegaCLI(),
			newStorCLI(),
			newSSACLI(),
		}
	}
	return &Prober{backends: backends, smart: newSmartctl()}
}

func (p *Prober) Probe(ctx context.Context) models.RaidInfo {
	info := models.RaidInfo{
		Arrays:        []models.Array{},
		PhysicalDisks: []models.PhysicalDisk{},
		SmartStatus:   []models.SmartStatus{},
	}
	var controller string
	var controllerHardware bool
	for _, b := range p.backends {
		if !b.Available() {
			continue
		}
		contrib, err := b.Probe(ctx)
		if err != nil {
			logger.Log.Warn("storage probe failed", "backend", b.Name(), "err", err)
			continue
		}
		if contrib.empty() {
			continue
		}
		info.Arrays = append(info.Arrays, contrib.Arrays...)
		info.PhysicalDisks = append(info.PhysicalDisks, contrib.Disks...)
		// Contributions accumulate, except the controller name: hardware
		// backends win over software mirroring.
		if contrib.Controller != "" && (controller == "" || (contrib.Hardware && !controllerHardware)) {
			controller = contrib.Controller
			controllerHardware = contrib.Hardware
		}
	}
	// Disk self-test status is polled per device regardless of whether any
	// RAID backend was found.
	if statuses := p.smart.Poll(ctx); len(statuses) > 0 {
		info.SmartStatus = statuses
	}
	if controller != "" {
		info.Controller = &controller
	}
	info.HasRaid = controller != "" || len(info.Arrays) > 0 || len(info.PhysicalDisks) > 0
	return info
}
