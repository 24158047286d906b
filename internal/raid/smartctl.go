package raid

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
)

// smartMonitor polls the SMART self-test verdict per block device. It runs
// independently of RAID detection and its results are reported even when no
// RAID backend was found.
type smartMonitor struct {
	path string
}

func newSmartctl() smartMonitor {
	path, err := exec.LookPath("smartctl")
	if err != nil {
		return smartMonitor{}
	}
	return smartMonitor{path: path}
}

func (m smartMonitor) Poll(ctx context.Context) []models.SmartStatus {
	if m.path == "" {
		return nil
	}
	scan, err := execx.Run(ctx, probeTimeout, m.path, "--scan")
	if err != nil {
		logger.Log.Warn("smartctl scan failed", "err", err)
		return nil
	}
	var statuses []models.SmartStatus
	for _, dev := range parseSmartScan(scan) {
		out, err := execx.Run(ctx, probeTimeout, m.path, "-H", dev)
		if err != nil && out == "" {
			// smartctl exits non-zero on failing disks but still prints the
			// verdict; only a completely silent run is skipped.
			logger.Log.Warn("smartctl health query failed", "device", dev, "err", err)
			continue
		}
		statuses = append(statuses, models.SmartStatus{
			Device: dev,
			Status: parseSmartHealth(out),
		})
	}
	return statuses
}

// parseSmartScan extracts device paths from lines such as
//
//	/dev/sda -d ata # /dev/sda, ATA device
func parseSmartScan(out string) []string {
	var devices []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "/dev/") {
			continue
		}
		devices = append(devices, fields[0])
	}
	return devices
}

// parseSmartHealth maps the verdict line onto passed/failed/unknown. ATA
// and SCSI devices phrase the line differently.
func parseSmartHealth(out string) string {
	for _, line := range strings.Split(out, "\n") {
		var verdict string
		switch {
		case strings.Contains(line, "overall-health self-assessment test result:"):
			_, verdict, _ = strings.Cut(line, "result:")
		case strings.Contains(line, "SMART Health Status:"):
			_, verdict, _ = strings.Cut(line, "Status:")
		default:
			continue
		}
		verdict = strings.ToUpper(strings.TrimSpace(verdict))
		switch {
		case verdict == "PASSED" || verdict == "OK":
			return models.SmartPassed
		case strings.HasPrefix(verdict, "FAILED"):
			return models.SmartFailed
		}
	}
	return models.SmartUnknown
}
