package amdsmi

// InitFlags selects which hardware classes the native library discovers.
// Flags combine by bitwise union.
type InitFlags uint64

const (
	InitAMDCPUs    InitFlags = 1 << 0
	InitAMDGPUs    InitFlags = 1 << 1
	InitNonAMDCPUs InitFlags = 1 << 2
	InitNonAMDGPUs InitFlags = 1 << 3
	InitAMDAPUs    InitFlags = InitAMDCPUs | InitAMDGPUs

	InitAllProcessors InitFlags = 0xFFFFFFFF
)

// MemoryType selects which memory pool a usage query reports on
type MemoryType uint32

const (
	MemoryTypeVRAM MemoryType = iota
	MemoryTypeVisibleVRAM
	MemoryTypeGTT
)

// TemperatureType selects the sensor location for a temperature query
type TemperatureType uint32

const (
	TemperatureTypeEdge TemperatureType = iota
	TemperatureTypeHotspot
	TemperatureTypeVRAM
	TemperatureTypeHBM0
	TemperatureTypeHBM1
	TemperatureTypeHBM2
	TemperatureTypeHBM3
	TemperatureTypePLX
)

// TemperatureMetric selects which measurement of a sensor is reported
type TemperatureMetric uint32

const (
	TemperatureMetricCurrent TemperatureMetric = iota
	TemperatureMetricMax
	TemperatureMetricMin
	TemperatureMetricMaxHyst
	TemperatureMetricMinHyst
	TemperatureMetricCritical
	TemperatureMetricCriticalHyst
	TemperatureMetricEmergency
	TemperatureMetricEmergencyHyst
	TemperatureMetricCritMin
	TemperatureMetricCritMinHyst
	TemperatureMetricOffset
	TemperatureMetricLowest
	TemperatureMetricHighest
)

// VoltageType selects the voltage rail for a voltage query
type VoltageType uint32

const (
	VoltageTypeVddGfx VoltageType = iota
	VoltageTypeVddBoard
)

// VoltageMetric selects which measurement of a voltage rail is reported
type VoltageMetric uint32

const (
	VoltageMetricCurrent VoltageMetric = iota
	VoltageMetricMax
	VoltageMetricMinCrit
	VoltageMetricMin
	VoltageMetricMaxCrit
	VoltageMetricAverage
	VoltageMetricLowest
	VoltageMetricHighest
)

// uuidBufferSize is the library-defined maximum length of a device UUID
// string, including the terminator.
const uuidBufferSize = 38

// The structures below are fixed binary layouts defined by the vendor
// header. They are a version-locked ABI contract; field order, widths and
// reserved padding must not change independently of the native library.

// EngineUsage is a snapshot of per-engine activity in percent
type EngineUsage struct {
	GfxActivity uint32
	UmcActivity uint32
	MmActivity  uint32
	_           [13]uint32
}

// PowerInfo is a snapshot of socket power draw and rail voltages
type PowerInfo struct {
	CurrentSocketPower uint32 // W
	AverageSocketPower uint32 // W
	GfxVoltage         uint32 // mV
	SocVoltage         uint32 // mV
	MemVoltage         uint32 // mV
	PowerLimit         uint32 // W
	_                  [11]uint32
}

// ProcEngineUsage is the per-process engine time breakdown in ns
type ProcEngineUsage struct {
	Gfx uint64
	Enc uint64
	_   [12]uint32
}

// ProcMemoryUsage is the per-process memory breakdown in bytes
type ProcMemoryUsage struct {
	GTT  uint64
	CPU  uint64
	VRAM uint64
	_    [10]uint32
}

// ProcInfo describes one process running on a processor
type ProcInfo struct {
	Name [32]byte
	PID  uint32
	_    uint32 // explicit padding, keeps Mem 8-byte aligned as in the C layout
	Mem  uint64
	EngineUsage   ProcEngineUsage
	MemoryUsage   ProcMemoryUsage
	ContainerName [32]byte
	_             [4]uint32
}

// EnergyConsumption is a point-in-time reading of the cumulative energy
// counter. It has no identity; each query produces a fresh value.
type EnergyConsumption struct {
	// Energy is the cumulative energy counter in micro-joules
	Energy uint64
	// Resolution is the precision of the counter in micro-joules
	Resolution float32
	// Timestamp is the sample time in nanoseconds
	Timestamp uint64
}
