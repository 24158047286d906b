package raid

import (
	"context"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
)

// ssaCLIBackend queries HP Smart Array controllers. The tool was renamed
// twice over its lifetime, so all three names are tried.
type ssaCLIBackend struct {
	path string
}

var ssaCLICandidates = []string{"ssacli", "hpssacli", "hpacucli"}

func newSSACLI() *ssaCLIBackend {
	return &ssaCLIBackend{path: findTool(ssaCLICandidates)}
}

func (b *ssaCLIBackend) Name() string { return "ssacli" }

func (b *ssaCLIBackend) Available() bool { return b.path != "" }

func (b *ssaCLIBackend) Probe(ctx context.Context) (Contribution, error) {
	out, err := execx.Run(ctx, probeTimeout, b.path, "ctrl", "all", "show", "config")
	if err != nil {
		return Contribution{}, err
	}
	return parseSSACLI(out), nil
}

// parseSSACLI reads the indented config listing:
//
//	Smart Array P420i in Slot 0 (Embedded)
//	   array A (SAS, Unused Space: 0 MB)
//	      logicaldrive 1 (279.4 GB, RAID 1, OK)
//	      physicaldrive 1I:2:1 (port 1I:box 2:bay 1, SAS, 300 GB, OK)
func parseSSACLI(out string) Contribution {
	contrib := Contribution{Hardware: true}
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, " in Slot "):
			contrib.Controller = "ssacli"
		case strings.HasPrefix(trimmed, "logicaldrive "):
			fields := strings.Fields(trimmed)
			attrs := parenAttrs(trimmed)
			if len(fields) < 2 || len(attrs) < 3 {
				continue
			}
			status := attrs[len(attrs)-1]
			contrib.Arrays = append(contrib.Arrays, models.Array{
				Name:      "ld" + fields[1],
				RaidLevel: attrs[1],
				Status:    status,
				Type:      "ssacli",
				Healthy:   models.HealthyStatus(status),
			})
		case strings.HasPrefix(trimmed, "physicaldrive "):
			fields := strings.Fields(trimmed)
			attrs := parenAttrs(trimmed)
			if len(fields) < 2 || len(attrs) < 4 {
				continue
			}
			contrib.Disks = append(contrib.Disks, models.PhysicalDisk{
				Device: fields[1],
				Media:  attrs[len(attrs)-3],
				Size:   attrs[len(attrs)-2],
				State:  attrs[len(attrs)-1],
			})
		}
	}
	if contrib.empty() {
		return Contribution{}
	}
	return contrib
}

// parenAttrs returns the comma-separated attributes inside the first
// parenthesized group of a line, or nil when there is none.
func parenAttrs(line string) []string {
	open := strings.Index(line, "(")
	close := strings.Index(line, ")")
	if open < 0 || close <= open {
		return nil
	}
	parts := strings.Split(line[open+1:close], ",")
	attrs := make([]string, 0, len(parts))
	for _, p := range parts {
		attrs = append(attrs, strings.TrimSpace(p))
	}
	return attrs
}
