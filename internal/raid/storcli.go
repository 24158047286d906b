package raid

import (
	"context"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
)

// storCLIBackend queries Broadcom/Avago controllers through storcli, which
// emits fixed-width tables under section headers.
type storCLIBackend struct {
	path string
}

var storCLICandidates = []string{
	"storcli",
	"storcli64",
	"/opt/MegaRAID/storcli/storcli64",
}

func newStorCLI() *storCLIBackend {
	return &storCLIBackend{path: findTool(storCLICandidates)}
}

func (b *storCLIBackend) Name() string { return "storcli" }

func (b *storCLIBackend) Available() bool { return b.path != "" }

func (b *storCLIBackend) Probe(ctx context.Context) (Contribution, error) {
	out, err := execx.Run(ctx, probeTimeout, b.path, "/call", "show")
	if err != nil {
		return Contribution{}, err
	}
	return parseStorCLI(out), nil
}

// storcli abbreviates states in its tables; expand the common ones so the
// health allow-list can match. Unknown abbreviations pass through as-is.
var storCLIStates = map[string]string{
	"Optl":  "Optimal",
	"Dgrd":  "Degraded",
	"Pdgd":  "Partially Degraded",
	"OfLn":  "Offline",
	"Rec":   "Recovering",
	"Onln":  "Online",
	"Offln": "Offline",
	"UGood": "Unconfigured Good",
	"UBad":  "Unconfigured Bad",
	"GHS":   "Global Hot Spare",
	"DHS":   "Dedicated Hot Spare",
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func expandStorCLIState(s string) string {
	if full, ok := storCLIStates[s]; ok {
		return full
	}
	return s
}

func parseStorCLI(out string) Contribution {
	var contrib Contribution
	section := ""
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "VD LIST"):
			section = "vd"
			continue
		case strings.HasPrefix(trimmed, "PD LIST"):
			section = "pd"
			continue
		case trimmed == "" || strings.HasPrefix(trimmed, "---"):
			continue
		}
		fields := strings.Fields(trimmed)
		switch section {
		case "vd":
			// 0/0   RAID1 Optl  RW ... 893.75 GB
			if len(fields) < 3 {
				continue
			}
			parts := strings.SplitN(fields[0], "/", 2)
			// Require numeric DG/VD so the column header row is skipped.
			if len(parts) != 2 || !allDigits(parts[0]) || !allDigits(parts[1]) {
				continue
			}
			status := expandStorCLIState(fields[2])
			contrib.Arrays = append(contrib.Arrays, models.Array{
				Name:      "vd" + parts[1],
				RaidLevel: fields[1],
				Status:    status,
				Type:      "storcli",
				Healthy:   models.HealthyStatus(status),
			})
		case "pd":
			// 252:0  7  Onln  0  893.75 GB SATA SSD N  N  512B Samsung SSD 860 U  -
			if len(fields) < 8 {
				continue
			}
			id := strings.SplitN(fields[0], ":", 2)
			if len(id) != 2 || !allDigits(id[0]) || !allDigits(id[1]) {
				continue
			}
			disk := models.PhysicalDisk{
				Device: fields[0],
				State:  expandStorCLIState(fields[2]),
				Size:   fields[4] + " " + fields[5],
				Media:  fields[6] + " " + fields[7],
			}
			// Size spans two tokens, so the model column starts at index 11
			// and runs up to the trailing Sp and Type columns.
			if len(fields) >= 14 {
				disk.Model = strings.Join(fields[11:len(fields)-2], " ")
			}
			contrib.Disks = append(contrib.Disks, disk)
		}
	}
	if len(contrib.Arrays) > 0 || len(contrib.Disks) > 0 {
		contrib.Controller = "storcli"
		contrib.Hardware = true
	}
	return contrib
}
