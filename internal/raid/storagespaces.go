package raid

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
)

// storageSpacesBackend covers the Windows software-mirroring driver via
// PowerShell's storage cmdlets. Output is requested as pipe-separated rows
// to avoid depending on table column widths.
type storageSpacesBackend struct{}

func newStorageSpaces() *storageSpacesBackend { return &storageSpacesBackend{} }

func (b *storageSpacesBackend) Name() string { return "storage-spaces" }

func (b *storageSpacesBackend) Available() bool {
	if runtime.GOOS != "windows" {
		return false
	}
	_, err := exec.LookPath("powershell")
	return err == nil
}

func (b *storageSpacesBackend) Probe(ctx context.Context) (Contribution, error) {
	var contrib Contribution
	out, err := execx.Run(ctx, probeTimeout, "powershell", "-NoProfile", "-Command",
		`Get-VirtualDisk | ForEach-Object { "$($_.FriendlyName)|$($_.ResiliencySettingName)|$($_.HealthStatus)" }`)
	if err != nil {
		return Contribution{}, err
	}
	for _, line := range strings.Split(out, "\n") {
		cols := strings.Split(strings.TrimSpace(line), "|")
		if len(cols) != 3 || cols[0] == "" {
			continue
		}
		contrib.Arrays = append(contrib.Arrays, models.Array{
			Name:      cols[0],
			RaidLevel: cols[1],
			Status:    cols[2],
			Type:      "storage-spaces",
			Healthy:   models.HealthyStatus(cols[2]),
		})
	}
	out, err = execx.Run(ctx, probeTimeout, "powershell", "-NoProfile", "-Command",
		`Get-PhysicalDisk | ForEach-Object { "$($_.FriendlyName)|$($_.MediaType)|$($_.Size)|$($_.HealthStatus)" }`)
	if err == nil {
		for _, line := range strings.Split(out, "\n") {
			cols := strings.Split(strings.TrimSpace(line), "|")
			if len(cols) != 4 || cols[0] == "" {
				continue
			}
			contrib.Disks = append(contrib.Disks, models.PhysicalDisk{
				Device: cols[0],
				Media:  cols[1],
				Size:   cols[2],
				State:  cols[3],
			})
		}
	}
	if len(contrib.Arrays) > 0 {
		contrib.Controller = "storage-spaces"
	}
	return contrib, nil
}
