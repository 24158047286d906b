package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const megaCLIVolumes = `Adapter 0 -- Virtual Drive Information:
Virtual Drive: 0 (Target Id: 0)
Name                :
RAID Level          : Primary-1, Secondary-0, RAID Level Qualifier-0
Size                : 1.817 TB
State               : Optimal
Number Of Drives    : 2
Virtual Drive: 1 (Target Id: 1)
RAID Level          : Primary-5, Secondary-0, RAID Level Qualifier-3
Size                : 5.451 TB
State               : Degraded
`

const megaCLIDisks = `Enclosure Device ID: 252
Slot Number: 0
PD Type: SAS
Raw Size: 1.819 TB [0xe8e088b0 Sectors]
Firmware state: Online, Spun Up
Inquiry Data: SEAGATE  ST2000NM0023    0004Z1X4FXKP

Enclosure Device ID: 252
Slot Number: 1
PD Type: SAS
Raw Size: 1.819 TB [0xe8e088b0 Sectors]
Firmware state: Rebuild
Inquiry Data: SEAGATE  ST2000NM0023    0004Z1X511HF
`

func TestParseMegaCLIVolumes(t *testing.T) {
	contrib := parseMegaCLIVolumes(megaCLIVolumes)

	assert.Equal(t, "megacli", contrib.Controller)
	assert.True(t, contrib.Hardware)
	require.Len(t, contrib.Arrays, 2)

	assert.Equal(t, "vd0", contrib.Arrays[0].Name)
	assert.Equal(t, "Optimal", contrib.Arrays[0].Status)
	assert.True(t, contrib.Arrays[0].Healthy)

	assert.Equal(t, "vd1", contrib.Arrays[1].Name)
	assert.False(t, contrib.Arrays[1].Healthy, "Degraded is outside the allow-list")
}

func TestParseMegaCLIDisks(t *testing.T) {
	disks := parseMegaCLIDisks(megaCLIDisks)

	require.Len(t, disks, 2)
	assert.Equal(t, "e252-s0", disks[0].Device)
	assert.Equal(t, "SAS", disks[0].Media)
	assert.Equal(t, "1.819 TB", disks[0].Size, "sector suffix stripped")
	assert.Equal(t, "Online, Spun Up", disks[0].State)
	assert.Equal(t, "SEAGATE ST2000NM0023 0004Z1X4FXKP", disks[0].Model)

	assert.Equal(t, "e252-s1", disks[1].Device)
	assert.Equal(t, "Rebuild", disks[1].State)
}

func TestParseMegaCLIEmptyOutput(t *testing.T) {
	contrib := parseMegaCLIVolumes("Exit Code: 0x00\n")
	assert.True(t, contrib.empty())
	assert.Empty(t, parseMegaCLIDisks(""))
}
