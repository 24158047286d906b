package exposition

import (
	"strings"
	"testing"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *models.Snapshot {
	controller := "mdadm"
	return &models.Snapshot{
		Hostname:  "node-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CPU:       models.CPUStats{Percent: 12.5, CoreCount: 4},
		Memory:    models.MemoryStats{Percent: 55.1, Total: 16 << 30, Used: 8 << 30, Available: 7 << 30},
		Disk:      models.DiskStats{Percent: 70, Total: 500 << 30, Used: 350 << 30, Free: 150 << 30},
		Disks: []models.PartitionUsage{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4", Percent: 70, Total: 500 << 30, Used: 350 << 30},
			{Device: "/dev/sdb1", Mountpoint: `/mnt/with"quote`, Fstype: "xfs", Percent: 10, Total: 100 << 30, Used: 10 << 30},
		},
		Network: models.NetworkCounters{BytesSent: 100, BytesRecv: 200, PacketsSent: 3, PacketsRecv: 4},
		NetworkInterfaces: map[string]models.NetworkCounters{
			"eth0": {BytesSent: 60, BytesRecv: 120, PacketsSent: 2, PacketsRecv: 3},
			"lo":   {BytesSent: 40, BytesRecv: 80, PacketsSent: 1, PacketsRecv: 1},
		},
		Load:     models.LoadStats{Load1: 0.5, Load5: 0.25, Load15: 0.1},
		BootTime: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Raid: models.RaidInfo{
			HasRaid:    true,
			Controller: &controller,
			Arrays: []models.Array{
				{Name: "md0", RaidLevel: "raid1", Status: "active", Type: "mdadm", Healthy: true},
				{Name: "md1", RaidLevel: "raid5", Status: "REBUILDING", Type: "mdadm", Healthy: false},
			},
			PhysicalDisks: []models.PhysicalDisk{{Device: "sda1"}, {Device: "sdb1"}},
		},
	}
}

// assertWellFormed checks every sample belongs to a declared family and
// every family carries a HELP and TYPE line before its samples.
func assertWellFormed(t *testing.T, text string) {
	t.Helper()
	helped := map[string]bool{}
	typed := map[string]string{}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		require.NotEmpty(t, line, "no blank lines in output")
		if rest, ok := strings.CutPrefix(line, "# HELP "); ok {
			name, help, found := strings.Cut(rest, " ")
			require.True(t, found, "HELP line must carry text: %q", line)
			require.NotEmpty(t, help)
			helped[name] = true
			continue
		}
		if rest, ok := strings.CutPrefix(line, "# TYPE "); ok {
			name, typ, found := strings.Cut(rest, " ")
			require.True(t, found)
			require.Contains(t, []string{"gauge", "counter"}, typ)
			require.True(t, helped[name], "TYPE after HELP for %s", name)
			typed[name] = typ
			continue
		}
		name := line
		if i := strings.IndexAny(line, "{ "); i > 0 {
			name = line[:i]
		}
		require.Contains(t, typed, name, "sample for undeclared family: %q", line)
		require.Regexp(t, ` -?[0-9.]+$`, line, "sample must end with a value")
	}
}

func TestEncodeWellFormed(t *testing.T) {
	out := Encode(sampleSnapshot())
	assertWellFormed(t, out)
}

func TestEncodeWellFormedWithoutRaid(t *testing.T) {
	snap := sampleSnapshot()
	snap.Raid = models.RaidInfo{}
	out := Encode(snap)

	assertWellFormed(t, out)
	assert.NotContains(t, out, "system_raid_", "raid families only when present")
}

func TestEncodeTypesAndValues(t *testing.T) {
	out := Encode(sampleSnapshot())

	assert.Contains(t, out, "# TYPE system_cpu_usage_percent gauge")
	assert.Contains(t, out, "system_cpu_usage_percent 12.5")
	assert.Contains(t, out, "# TYPE system_network_bytes_sent_total counter")
	assert.Contains(t, out, "system_network_bytes_sent_total 100")
	assert.Contains(t, out, `system_memory_bytes{type="used"} `+"8589934592")
	assert.Contains(t, out, `system_network_interface_bytes_total{interface="eth0",direction="sent"} 60`)
	assert.Contains(t, out, "system_load15 0.1")
}

func TestEncodeRaidFamilies(t *testing.T) {
	out := Encode(sampleSnapshot())

	assert.Contains(t, out, "system_raid_array_count 2")
	assert.Contains(t, out, "system_raid_physical_disk_count 2")
	assert.Contains(t, out, `system_raid_array_healthy{name="md0",level="raid1"} 1`)
	assert.Contains(t, out, `system_raid_array_healthy{name="md1",level="raid5"} 0`)
}

func TestEncodeEscapesLabelValues(t *testing.T) {
	out := Encode(sampleSnapshot())
	assert.Contains(t, out, `mountpoint="/mnt/with\"quote"`)

	assert.Equal(t, `a\\b\"c\nd`, escapeLabel("a\\b\"c\nd"))
}

func TestEncodeStableOrdering(t *testing.T) {
	snap := sampleSnapshot()
	assert.Equal(t, Encode(snap), Encode(snap), "deterministic output for identical input")

	out := Encode(snap)
	eth0 := strings.Index(out, `interface="eth0"`)
	lo := strings.Index(out, `interface="lo"`)
	assert.True(t, eth0 >= 0 && lo > eth0, "interfaces sorted by name")
}
