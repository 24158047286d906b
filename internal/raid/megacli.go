package raid

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
)

// megaCLIBackend queries LSI MegaRAID controllers through the MegaCli
// utility, which ships under several names and install locations.
type megaCLIBackend struct {
	path string
}

var megaCLICandidates = []string{
	"megacli",
	"MegaCli",
	"MegaCli64",
	"/opt/MegaRAID/MegaCli/MegaCli64",
	"/opt/MegaRAID/MegaCli/MegaCli",
}

func newMegaCLI() *megaCLIBackend {
	return &megaCLIBackend{path: findTool(megaCLICandidates)}
}

func (b *megaCLIBackend) Name() string { return "megacli" }

func (b *megaCLIBackend) Available() bool { return b.path != "" }

func (b *megaCLIBackend) Probe(ctx context.Context) (Contribution, error) {
	out, err := execx.Run(ctx, probeTimeout, b.path, "-LDInfo", "-Lall", "-aALL", "-NoLog")
	if err != nil {
		return Contribution{}, err
	}
	contrib := parseMegaCLIVolumes(out)
	// Physical disk enumeration failing does not discard the volume data.
	if out, err := execx.Run(ctx, probeTimeout, b.path, "-PDList", "-aALL", "-NoLog"); err == nil {
		contrib.Disks = parseMegaCLIDisks(out)
	}
	return contrib, nil
}

// parseMegaCLIVolumes reads the colon-separated key/value blocks emitted by
// -LDInfo. One array is flushed per "State" key.
func parseMegaCLIVolumes(out string) Contribution {
	contrib := Contribution{Hardware: true}
	var name, level string
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := splitColon(line)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(key, "Adapter"):
			contrib.Controller = "megacli"
		case key == "Virtual Drive":
			if f := strings.Fields(value); len(f) > 0 {
				name = "vd" + f[0]
			}
		case key == "RAID Level":
			level = value
		case key == "State":
			if name == "" {
				continue
			}
			contrib.Arrays = append(contrib.Arrays, models.Array{
				Name:      name,
				RaidLevel: level,
				Status:    value,
				Type:      "megacli",
				Healthy:   models.HealthyStatus(value),
			})
			name, level = "", ""
		}
	}
	if len(contrib.Arrays) == 0 && contrib.Controller == "" {
		return Contribution{}
	}
	return contrib
}

// parseMegaCLIDisks reads -PDList blocks. A new disk starts at each
// "Enclosure Device ID" key.
func parseMegaCLIDisks(out string) []models.PhysicalDisk {
	var disks []models.PhysicalDisk
	var cur *models.PhysicalDisk
	var enclosure string
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := splitColon(line)
		if !ok {
			continue
		}
		switch key {
		case "Enclosure Device ID":
			if cur != nil && cur.Device != "" {
				disks = append(disks, *cur)
			}
			cur = &models.PhysicalDisk{}
			enclosure = value
		case "Slot Number":
			if cur != nil {
				cur.Device = "e" + enclosure + "-s" + value
			}
		case "PD Type":
			if cur != nil {
				cur.Media = value
			}
		case "Raw Size":
			if cur != nil {
				if i := strings.Index(value, " ["); i > 0 {
					value = value[:i]
				}
				cur.Size = value
			}
		case "Firmware state":
			if cur != nil {
				cur.State = value
			}
		case "Inquiry Data":
			if cur != nil {
				cur.Model = strings.Join(strings.Fields(value), " ")
			}
		}
	}
	if cur != nil && cur.Device != "" {
		disks = append(disks, *cur)
	}
	return disks
}

func splitColon(line string) (key, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

// findTool resolves the first candidate that exists either on PATH or as an
// absolute install location.
func findTool(candidates []string) string {
	for _, c := range candidates {
		if strings.ContainsRune(c, '/') || strings.ContainsRune(c, '\\') {
			if _, err := os.Stat(c); err == nil {
				return c
			}
			continue
		}
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}
