package amdsmi

// socketToken and processorToken are opaque identifiers issued by the
// native library. They are plain copyable values with no ownership of their
// own; their validity is borrowed from the library instance they were
// enumerated under.
type (
	socketToken    uintptr
	processorToken uintptr
)

// nativeLib is the raw entry-point surface of libamd_smi.so. Every method
// maps one-to-one onto a native symbol and returns the raw status code
// unmodified. Slice arguments are output buffers; a nil slice is the
// null-pointer sizing probe of the two-phase retrieval protocol. Pointer
// arguments are scratch output storage and hold no meaningful value until
// the call reports success.
//
// The production implementation resolves these symbols from the shared
// library at load time; tests substitute a programmable double.
type nativeLib interface {
	Init(flags uint64) uint32
	Shutdown() uint32

	SocketHandles(count *uint32, handles []socketToken) uint32
	ProcessorHandles(socket socketToken, count *uint32, handles []processorToken) uint32

	DeviceUUID(processor processorToken, length *uint32, buf []byte) uint32
	Activity(processor processorToken, out *EngineUsage) uint32
	EnergyCount(processor processorToken, energy *uint64, resolution *float32, timestamp *uint64) uint32
	MemoryUsage(processor processorToken, memType MemoryType, used *uint64) uint32
	PowerInfo(processor processorToken, out *PowerInfo) uint32
	PowerManagementEnabled(processor processorToken, enabled *bool) uint32
	TempMetric(processor processorToken, sensor TemperatureType, metric TemperatureMetric, value *int64) uint32
	VoltMetric(processor processorToken, sensor VoltageType, metric VoltageMetric, value *int64) uint32
	ProcessList(processor processorToken, count *uint32, buf []ProcInfo) uint32
}
