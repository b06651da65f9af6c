package amdsmi

// Library is the root handle of the ownership hierarchy. It is obtained
// from Init and must be closed when no longer needed; the native library is
// shut down exactly once, when the last handle derived from it (the Library
// itself, or any Socket or Processor) has been closed.
type Library interface {
	// SocketHandles enumerates the physical sockets currently visible to
	// the native library. Each call re-enumerates; results are not cached.
	SocketHandles() ([]Socket, error)

	// Close releases this handle's reference. Derived Socket and Processor
	// handles remain valid until they are closed themselves.
	Close() error
}

// Socket represents one enumerated physical socket
type Socket interface {
	// ProcessorHandles enumerates the processors under this socket
	ProcessorHandles() ([]Processor, error)

	Close() error
}

// Processor represents one enumerated compute device (GPU, CPU or APU).
// All queries are stateless single-shot reads against the native library.
type Processor interface {
	// DeviceUUID returns the unique identifier of the device
	DeviceUUID() (string, error)

	// DeviceActivity returns a snapshot of per-engine utilization
	DeviceActivity() (EngineUsage, error)

	// DeviceEnergyConsumption returns the cumulative energy counter
	DeviceEnergyConsumption() (EnergyConsumption, error)

	// DeviceMemoryUsage returns the used byte count of the given memory pool
	DeviceMemoryUsage(memType MemoryType) (uint64, error)

	// DevicePowerConsumption returns a snapshot of power draw and voltages
	DevicePowerConsumption() (PowerInfo, error)

	// DevicePowerManagement reports whether power management is enabled
	DevicePowerManagement() (bool, error)

	// DeviceTemperature returns the given metric of the given temperature
	// sensor, in millidegrees Celsius
	DeviceTemperature(sensor TemperatureType, metric TemperatureMetric) (int64, error)

	// DeviceVoltage returns the given metric of the given voltage rail, in mV
	DeviceVoltage(sensor VoltageType, metric VoltageMetric) (int64, error)

	// DeviceProcessList returns the processes currently running on the device
	DeviceProcessList() ([]ProcInfo, error)

	Close() error
}
