// Package raid detects and queries whichever storage backends are present
// on the host and folds their reports into a single health model. Hosts in
// a fleet carry wildly different tooling, so every probe degrades to an
// empty contribution instead of failing the collection.
package raid

import (
	"context"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
)

// Ceiling for one backend invocation. Vendor CLIs can hang on dead
// controllers and must never stall a collection cycle indefinitely.
const probeTimeout = 30 * time.Second

// Contribution is the partial result one backend adds to the aggregate.
type Contribution struct {
	// Controller names the backend when it positively identified controller
	// presence; empty otherwise.
	Controller string
	// Hardware controllers take precedence over software mirroring when
	// both are detected, since they carry more actionable detail.
	Hardware bool
	Arrays   []models.Array
	Disks    []models.PhysicalDisk
}

func (c Contribution) empty() bool {
	return c.Controller == "" && len(c.Arrays) == 0 && len(c.Disks) == 0
}

// Backend is one RAID/controller technology the prober knows how to query.
type Backend interface {
	Name() string
	// Available reports whether the backing tool or kernel interface exists
	// on this host. An unavailable backend is skipped without error.
	Available() bool
	Probe(ctx context.Context) (Contribution, error)
}
