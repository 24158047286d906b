package raid

import (
	"context"
	"os"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
)

// mdadmBackend reads the Linux software-RAID driver state from /proc/mdstat.
// No subprocess is needed; the kernel exposes the status file directly.
type mdadmBackend struct {
	mdstatPath string
}

func (b *mdadmBackend) Name() string { return "mdadm" }

func (b *mdadmBackend) Available() bool {
	_, err := os.Stat(b.mdstatPath)
	return err == nil
}

func (b *mdadmBackend) Probe(ctx context.Context) (Contribution, error) {
	data, err := os.ReadFile(b.mdstatPath)
	if err != nil {
		return Contribution{}, err
	}
	return parseMdstat(string(data)), nil
}

// parseMdstat extracts arrays from lines of the form
//
//	md0 : active raid1 sda1[0] sdb1[1]
//
// Lines that do not match are skipped, never fatal.
func parseMdstat(text string) Contribution {
	var contrib Contribution
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[1] != ":" || !strings.HasPrefix(fields[0], "md") {
			continue
		}
		status := fields[2]
		rest := fields[3:]
		var level string
		if len(rest) > 0 && looksLikeRaidLevel(rest[0]) {
			level = rest[0]
			rest = rest[1:]
		}
		contrib.Arrays = append(contrib.Arrays, models.Array{
			Name:      fields[0],
			RaidLevel: level,
			Status:    status,
			Type:      "mdadm",
			Healthy:   models.HealthyStatus(status),
		})
		for _, tok := range rest {
			if disk, ok := parseMdMember(tok); ok {
				contrib.Disks = append(contrib.Disks, disk)
			}
		}
	}
	if len(contrib.Arrays) > 0 {
		// Presence of the status file alone is not controller presence;
		// only an enumerated array counts.
		contrib.Controller = "mdadm"
	}
	return contrib
}

func looksLikeRaidLevel(tok string) bool {
	return strings.HasPrefix(tok, "raid") || tok == "linear" || tok == "multipath"
}

// parseMdMember decodes member tokens such as sda1[0], sdb1[1](F) (faulty)
// or sdc1[2](S) (spare).
func parseMdMember(tok string) (models.PhysicalDisk, bool) {
	idx := strings.Index(tok, "[")
	if idx <= 0 {
		return models.PhysicalDisk{}, false
	}
	state := "in_sync"
	switch {
	case strings.Contains(tok, "(F)"):
		state = "faulty"
	case strings.Contains(tok, "(S)"):
		state = "spare"
	}
	return models.PhysicalDisk{Device: tok[:idx], State: state}, true
}
