package telemetry

import (
	"context"
	"time"
)

// Collector records telemetry samples for later analysis
type Collector interface {
	Record(ctx context.Context, sample *Sample) error
	Close() error
}

// Repository is the storage backend behind a Collector
type Repository interface {
	Record(sample *Sample) error
	Close() error
}

// Sample is one telemetry observation of one processor
type Sample struct {
	Timestamp  time.Time
	DeviceUUID string
	Activity   ActivityMetrics
	Thermal    ThermalMetrics
	Power      PowerMetrics
	Memory     MemoryMetrics
	// ProcessCount is the number of processes running on the device
	ProcessCount int
}

// Domain value objects
type ActivityMetrics struct {
	Gfx int
	Umc int
	Mm  int
}

type ThermalMetrics struct {
	// EdgeTemperature in millidegrees Celsius
	EdgeTemperature int64
}

type PowerMetrics struct {
	// SocketPower in watts
	SocketPower int
	// GfxVoltage in millivolts
	GfxVoltage int
	// EnergyMicrojoules is the cumulative energy counter
	EnergyMicrojoules uint64
}

type MemoryMetrics struct {
	// VRAMUsed in bytes
	VRAMUsed uint64
}
