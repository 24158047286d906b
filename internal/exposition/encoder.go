// Package exposition renders snapshots in the Prometheus text format:
// HELP/TYPE declarations followed by labeled sample lines. Family order is
// fixed so output diffs stay reproducible.
package exposition

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
)

type label struct {
	name  string
	value string
}

// Encode renders a snapshot. Gauges carry point-in-time values; cumulative
// byte/packet totals are declared counters, which consumers rely on for
// rate calculations.
func Encode(snap *models.Snapshot) string {
	var b strings.Builder

	family(&b, "system_cpu_usage_percent", "CPU usage percentage", "gauge")
	sample(&b, "system_cpu_usage_percent", nil, fmtFloat(snap.CPU.Percent))
	family(&b, "system_cpu_core_count", "Number of logical CPU cores", "gauge")
	sample(&b, "system_cpu_core_count", nil, strconv.Itoa(snap.CPU.CoreCount))

	family(&b, "system_memory_usage_percent", "Memory usage percentage", "gauge")
	sample(&b, "system_memory_usage_percent", nil, fmtFloat(snap.Memory.Percent))
	family(&b, "system_memory_bytes", "Memory in bytes", "gauge")
	sample(&b, "system_memory_bytes", []label{{"type", "total"}}, fmtUint(snap.Memory.Total))
	sample(&b, "system_memory_bytes", []label{{"type", "used"}}, fmtUint(snap.Memory.Used))
	sample(&b, "system_memory_bytes", []label{{"type", "available"}}, fmtUint(snap.Memory.Available))

	family(&b, "system_disk_usage_percent", "Root volume usage percentage", "gauge")
	sample(&b, "system_disk_usage_percent", nil, fmtFloat(snap.Disk.Percent))
	family(&b, "system_disk_bytes", "Root volume in bytes", "gauge")
	sample(&b, "system_disk_bytes", []label{{"type", "total"}}, fmtUint(snap.Disk.Total))
	sample(&b, "system_disk_bytes", []label{{"type", "used"}}, fmtUint(snap.Disk.Used))
	sample(&b, "system_disk_bytes", []label{{"type", "free"}}, fmtUint(snap.Disk.Free))

	// Partition lines keep the collector's enumeration order.
	family(&b, "system_partition_usage_percent", "Partition usage percentage", "gauge")
	for _, p := range snap.Disks {
		sample(&b, "system_partition_usage_percent", partitionLabels(p), fmtFloat(p.Percent))
	}
	family(&b, "system_partition_bytes", "Partition size in bytes", "gauge")
	for _, p := range snap.Disks {
		labels := append(partitionLabels(p), label{"type", "total"})
		sample(&b, "system_partition_bytes", labels, fmtUint(p.Total))
		labels[len(labels)-1] = label{"type", "used"}
		sample(&b, "system_partition_bytes", labels, fmtUint(p.Used))
	}

	family(&b, "system_network_bytes_sent_total", "Bytes sent across all interfaces", "counter")
	sample(&b, "system_network_bytes_sent_total", nil, fmtUint(snap.Network.BytesSent))
	family(&b, "system_network_bytes_recv_total", "Bytes received across all interfaces", "counter")
	sample(&b, "system_network_bytes_recv_total", nil, fmtUint(snap.Network.BytesRecv))
	family(&b, "system_network_packets_sent_total", "Packets sent across all interfaces", "counter")
	sample(&b, "system_network_packets_sent_total", nil, fmtUint(snap.Network.PacketsSent))
	family(&b, "system_network_packets_recv_total", "Packets received across all interfaces", "counter")
	sample(&b, "system_network_packets_recv_total", nil, fmtUint(snap.Network.PacketsRecv))

	family(&b, "system_network_interface_bytes_total", "Bytes per interface", "counter")
	for _, name := range sortedInterfaces(snap.NetworkInterfaces) {
		nic := snap.NetworkInterfaces[name]
		sample(&b, "system_network_interface_bytes_total",
			[]label{{"interface", name}, {"direction", "sent"}}, fmtUint(nic.BytesSent))
		sample(&b, "system_network_interface_bytes_total",
			[]label{{"interface", name}, {"direction", "recv"}}, fmtUint(nic.BytesRecv))
	}
	family(&b, "system_network_interface_packets_total", "Packets per interface", "counter")
	for _, name := range sortedInterfaces(snap.NetworkInterfaces) {
		nic := snap.NetworkInterfaces[name]
		sample(&b, "system_network_interface_packets_total",
			[]label{{"interface", name}, {"direction", "sent"}}, fmtUint(nic.PacketsSent))
		sample(&b, "system_network_interface_packets_total",
			[]label{{"interface", name}, {"direction", "recv"}}, fmtUint(nic.PacketsRecv))
	}

	family(&b, "system_load1", "Load average over 1 minute", "gauge")
	sample(&b, "system_load1", nil, fmtFloat(snap.Load.Load1))
	family(&b, "system_load5", "Load average over 5 minutes", "gauge")
	sample(&b, "system_load5", nil, fmtFloat(snap.Load.Load5))
	family(&b, "system_load15", "Load average over 15 minutes", "gauge")
	sample(&b, "system_load15", nil, fmtFloat(snap.Load.Load15))

	family(&b, "system_boot_time_seconds", "Boot time as a unix timestamp", "gauge")
	sample(&b, "system_boot_time_seconds", nil, strconv.FormatInt(snap.BootTime.Unix(), 10))

	if snap.Raid.HasRaid {
		family(&b, "system_raid_array_count", "Number of RAID arrays", "gauge")
		sample(&b, "system_raid_array_count", nil, strconv.Itoa(len(snap.Raid.Arrays)))
		family(&b, "system_raid_physical_disk_count", "Number of RAID physical disks", "gauge")
		sample(&b, "system_raid_physical_disk_count", nil, strconv.Itoa(len(snap.Raid.PhysicalDisks)))
		family(&b, "system_raid_array_healthy", "Array health, 1 healthy 0 degraded", "gauge")
		for _, arr := range snap.Raid.Arrays {
			v := "0"
			if arr.Healthy {
				v = "1"
			}
			sample(&b, "system_raid_array_healthy",
				[]label{{"name", arr.Name}, {"level", arr.RaidLevel}}, v)
		}
	}

	if snap.Windows != nil {
		family(&b, "system_process_count", "Number of running processes", "gauge")
		sample(&b, "system_process_count", nil, strconv.Itoa(snap.Windows.ProcessCount))
		family(&b, "system_service_count", "Number of installed services", "gauge")
		sample(&b, "system_service_count", nil, strconv.Itoa(snap.Windows.ServiceCount))
	}

	return b.String()
}

func family(b *strings.Builder, name, help, typ string) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(help)
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(typ)
	b.WriteByte('\n')
}

func sample(b *strings.Builder, name string, labels []label, value string) {
	b.WriteString(name)
	if len(labels) > 0 {
		b.WriteByte('{')
		for i, l := range labels {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(l.name)
			b.WriteString(`="`)
			b.WriteString(escapeLabel(l.value))
			b.WriteByte('"')
		}
		b.WriteByte('}')
	}
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string {
	return labelEscaper.Replace(v)
}

func partitionLabels(p models.PartitionUsage) []label {
	return []label{{"device", p.Device}, {"mountpoint", p.Mountpoint}}
}

func sortedInterfaces(nics map[string]models.NetworkCounters) []string {
	names := make([]string, 0, len(nics))
	for name := range nics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
