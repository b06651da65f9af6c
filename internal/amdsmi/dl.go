//go:build linux

package amdsmi

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libPath is the conventional soname of the vendor library. The dynamic
// loader's search path decides where it is found.
const libPath = "libamd_smi.so"

// dynamicLib implements nativeLib on top of the real shared library. Each
// field holds a trampoline registered against the corresponding native
// symbol; opaque handle tokens travel as uintptr and output structures as
// raw pointers, matching the C ABI.
type dynamicLib struct {
	amdsmiInit                  func(flags uint64) uint32
	amdsmiShutDown              func() uint32
	getSocketHandles            func(count *uint32, handles unsafe.Pointer) uint32
	getProcessorHandles         func(socket uintptr, count *uint32, handles unsafe.Pointer) uint32
	getGpuDeviceUUID            func(processor uintptr, length *uint32, buf unsafe.Pointer) uint32
	getGpuActivity              func(processor uintptr, out unsafe.Pointer) uint32
	getEnergyCount              func(processor uintptr, energy *uint64, resolution *float32, timestamp *uint64) uint32
	getGpuMemoryUsage           func(processor uintptr, memType uint32, used *uint64) uint32
	getPowerInfo                func(processor uintptr, out unsafe.Pointer) uint32
	isGpuPowerManagementEnabled func(processor uintptr, enabled *bool) uint32
	getTempMetric               func(processor uintptr, sensor, metric uint32, value *int64) uint32
	getGpuVoltMetric            func(processor uintptr, sensor, metric uint32, value *int64) uint32
	getGpuProcessList           func(processor uintptr, count *uint32, buf unsafe.Pointer) uint32
}

// loadNativeLib opens libamd_smi.so and resolves every required entry
// point. A missing library or symbol fails the load; nothing is called yet.
func loadNativeLib() (nativeLib, error) {
	handle, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", libPath, err)
	}

	l := &dynamicLib{}
	symbols := []struct {
		name string
		fptr any
	}{
		{"amdsmi_init", &l.amdsmiInit},
		{"amdsmi_shut_down", &l.amdsmiShutDown},
		{"amdsmi_get_socket_handles", &l.getSocketHandles},
		{"amdsmi_get_processor_handles", &l.getProcessorHandles},
		{"amdsmi_get_gpu_device_uuid", &l.getGpuDeviceUUID},
		{"amdsmi_get_gpu_activity", &l.getGpuActivity},
		{"amdsmi_get_energy_count", &l.getEnergyCount},
		{"amdsmi_get_gpu_memory_usage", &l.getGpuMemoryUsage},
		{"amdsmi_get_power_info", &l.getPowerInfo},
		{"amdsmi_is_gpu_power_management_enabled", &l.isGpuPowerManagementEnabled},
		{"amdsmi_get_temp_metric", &l.getTempMetric},
		{"amdsmi_get_gpu_volt_metric", &l.getGpuVoltMetric},
		{"amdsmi_get_gpu_process_list", &l.getGpuProcessList},
	}

	for _, sym := range symbols {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s in %s: %w", sym.name, libPath, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}

	return l, nil
}

// sliceBase returns the address of the first element, or nil for the
// null-buffer sizing probe.
func sliceBase[T any](buf []T) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}

	return unsafe.Pointer(&buf[0])
}

func (l *dynamicLib) Init(flags uint64) uint32 {
	return l.amdsmiInit(flags)
}

func (l *dynamicLib) Shutdown() uint32 {
	return l.amdsmiShutDown()
}

func (l *dynamicLib) SocketHandles(count *uint32, handles []socketToken) uint32 {
	return l.getSocketHandles(count, sliceBase(handles))
}

func (l *dynamicLib) ProcessorHandles(socket socketToken, count *uint32, handles []processorToken) uint32 {
	return l.getProcessorHandles(uintptr(socket), count, sliceBase(handles))
}

func (l *dynamicLib) DeviceUUID(processor processorToken, length *uint32, buf []byte) uint32 {
	return l.getGpuDeviceUUID(uintptr(processor), length, sliceBase(buf))
}

func (l *dynamicLib) Activity(processor processorToken, out *EngineUsage) uint32 {
	return l.getGpuActivity(uintptr(processor), unsafe.Pointer(out))
}

func (l *dynamicLib) EnergyCount(processor processorToken, energy *uint64, resolution *float32, timestamp *uint64) uint32 {
	return l.getEnergyCount(uintptr(processor), energy, resolution, timestamp)
}

func (l *dynamicLib) MemoryUsage(processor processorToken, memType MemoryType, used *uint64) uint32 {
	return l.getGpuMemoryUsage(uintptr(processor), uint32(memType), used)
}

func (l *dynamicLib) PowerInfo(processor processorToken, out *PowerInfo) uint32 {
	return l.getPowerInfo(uintptr(processor), unsafe.Pointer(out))
}

func (l *dynamicLib) PowerManagementEnabled(processor processorToken, enabled *bool) uint32 {
	return l.isGpuPowerManagementEnabled(uintptr(processor), enabled)
}

func (l *dynamicLib) TempMetric(processor processorToken, sensor TemperatureType, metric TemperatureMetric, value *int64) uint32 {
	return l.getTempMetric(uintptr(processor), uint32(sensor), uint32(metric), value)
}

func (l *dynamicLib) VoltMetric(processor processorToken, sensor VoltageType, metric VoltageMetric, value *int64) uint32 {
	return l.getGpuVoltMetric(uintptr(processor), uint32(sensor), uint32(metric), value)
}

func (l *dynamicLib) ProcessList(processor processorToken, count *uint32, buf []ProcInfo) uint32 {
	return l.getGpuProcessList(uintptr(processor), count, sliceBase(buf))
}
