package models

import "time"

// Snapshot is one point-in-time bundle of host and storage-health metrics.
// It is built fresh on every collection cycle and never mutated afterwards.
type Snapshot struct {
	Hostname          string                     `json:"hostname"`
	Timestamp         time.Time                  `json:"timestamp"`
	CPU               CPUStats                   `json:"cpu"`
	Memory            MemoryStats                `json:"memory"`
	Disk              DiskStats                  `json:"disk"`
	Disks             []PartitionUsage           `json:"disks"`
	Network           NetworkCounters            `json:"network"`
	NetworkInterfaces map[string]NetworkCounters `json:"network_interfaces"`
	Load              LoadStats                  `json:"load"`
	BootTime          time.Time                  `json:"boot_time"`
	Raid              RaidInfo                   `json:"raid"`
	Windows           *WindowsInfo               `json:"windows,omitempty"`
}

type CPUStats struct {
	Percent   float64 `json:"percent"`
	CoreCount int     `json:"core_count"`
}

type MemoryStats struct {
	Percent   float64 `json:"percent"`
	Total     uint64  `json:"total"`
	Used      uint64  `json:"used"`
	Available uint64  `json:"available"`
}

// DiskStats describes usage of the root volume.
type DiskStats struct {
	Percent float64 `json:"percent"`
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
}

type PartitionUsage struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"filesystem"`
	Percent    float64 `json:"percent"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
}

type NetworkCounters struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
}

// LoadStats carries load averages where the OS exposes them; zero-filled
// elsewhere so the schema stays stable across platforms.
type LoadStats struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// WindowsInfo is the Windows-only extension block.
type WindowsInfo struct {
	ProcessCount int `json:"process_count"`
	ServiceCount int `json:"service_count"`
}
