package models

import "strings"

// RaidInfo aggregates what every storage backend on the host reported.
// HasRaid is true iff some backend identified a controller or enumerated at
// least one array or physical disk.
type RaidInfo struct {
	HasRaid       bool           `json:"has_raid"`
	Controller    *string        `json:"controller"`
	Arrays        []Array        `json:"arrays"`
	PhysicalDisks []PhysicalDisk `json:"physical_disks"`
	SmartStatus   []SmartStatus  `json:"smart_status"`
}

// Array is one logical volume as reported by its backend. RaidLevel and
// Status keep the backend's own vocabulary; Healthy is derived from Status.
type Array struct {
	Name      string `json:"name"`
	RaidLevel string `json:"raid_level"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Healthy   bool   `json:"healthy"`
}

// PhysicalDisk describes one member disk. Backends report different subsets
// of these fields; the rest stay empty.
type PhysicalDisk struct {
	Device string `json:"device"`
	Model  string `json:"model,omitempty"`
	Size   string `json:"size,omitempty"`
	State  string `json:"state,omitempty"`
	Media  string `json:"media,omitempty"`
}

// SmartStatus is the self-test verdict for one block device.
type SmartStatus struct {
	Device string `json:"device"`
	Status string `json:"status"`
}

const (
	SmartPassed  = "passed"
	SmartFailed  = "failed"
	SmartUnknown = "unknown"
)

// Statuses that count as healthy. Anything a backend reports outside this
// list (rebuilding, degraded, failed, ...) marks the array unhealthy.
var healthyStatuses = map[string]struct{}{
	"clean":   {},
	"active":  {},
	"optimal": {},
	"ok":      {},
	"healthy": {},
}

// HealthyStatus maps a backend's free-text array status onto the boolean
// health flag used in exposition output.
func HealthyStatus(status string) bool {
	_, ok := healthyStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
