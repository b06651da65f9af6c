package amdsmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleProcessor builds a one-socket, one-processor hierarchy around the
// given fake and returns the processor
func singleProcessor(t *testing.T, fake *fakeNative) Processor {
	t.Helper()

	fake.sockets = []socketToken{0x10}
	fake.processors = map[socketToken][]processorToken{0x10: {0x11}}

	lib, err := initNative(fake, InitAMDGPUs)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	sockets, err := lib.SocketHandles()
	require.NoError(t, err)
	t.Cleanup(func() { sockets[0].Close() })

	processors, err := sockets[0].ProcessorHandles()
	require.NoError(t, err)
	require.Len(t, processors, 1)
	t.Cleanup(func() { processors[0].Close() })

	return processors[0]
}

func TestDeviceUUIDTerminatedBuffer(t *testing.T) {
	fake := &fakeNative{
		uuid:    []byte("8700-1002-0x730f\x00"),
		uuidLen: 17,
	}
	processor := singleProcessor(t, fake)

	uuid, err := processor.DeviceUUID()
	require.NoError(t, err)
	assert.Equal(t, "8700-1002-0x730f", uuid)
}

func TestDeviceUUIDUnterminatedBuffer(t *testing.T) {
	// Reported length covers the text exactly, with no terminator inside it
	fake := &fakeNative{
		uuid:    []byte("8700-1002-0x730fGARBAGE"),
		uuidLen: 16,
	}
	processor := singleProcessor(t, fake)

	uuid, err := processor.DeviceUUID()
	require.NoError(t, err)
	assert.Equal(t, "8700-1002-0x730f", uuid)
}

func TestDeviceUUIDInvalidEncodingKeepsCallStatus(t *testing.T) {
	fake := &fakeNative{
		uuid:    []byte{0xff, 0xfe, 0xfd},
		uuidLen: 3,
	}
	processor := singleProcessor(t, fake)

	_, err := processor.DeviceUUID()
	require.Error(t, err)

	// Decode failures report the status of the call that produced the
	// bytes, which succeeded.
	st, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, st)
}

func TestDeviceUUIDErrorStatus(t *testing.T) {
	fake := &fakeNative{uuidStatus: uint32(StatusNotSupported)}
	processor := singleProcessor(t, fake)

	_, err := processor.DeviceUUID()
	require.Error(t, err)

	st, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusNotSupported, st)
}

func TestDeviceActivity(t *testing.T) {
	fake := &fakeNative{
		activity: EngineUsage{GfxActivity: 83, UmcActivity: 41, MmActivity: 7},
	}
	processor := singleProcessor(t, fake)

	usage, err := processor.DeviceActivity()
	require.NoError(t, err)
	assert.Equal(t, uint32(83), usage.GfxActivity)
	assert.Equal(t, uint32(41), usage.UmcActivity)
	assert.Equal(t, uint32(7), usage.MmActivity)
}

func TestDeviceEnergyConsumption(t *testing.T) {
	fake := &fakeNative{
		energy: EnergyConsumption{Energy: 123456789, Resolution: 15.3, Timestamp: 987654321},
	}
	processor := singleProcessor(t, fake)

	consumption, err := processor.DeviceEnergyConsumption()
	require.NoError(t, err)
	assert.Equal(t, fake.energy, consumption)
}

func TestDeviceMemoryUsagePassthrough(t *testing.T) {
	fake := &fakeNative{
		memoryUsed: map[MemoryType]uint64{
			MemoryTypeVRAM: 4096,
			MemoryTypeGTT:  1024,
		},
	}
	processor := singleProcessor(t, fake)

	used, err := processor.DeviceMemoryUsage(MemoryTypeVRAM)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), used)

	used, err = processor.DeviceMemoryUsage(MemoryTypeGTT)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), used)
}

func TestDeviceTemperatureError(t *testing.T) {
	fake := &fakeNative{tempStatus: uint32(StatusNotSupported)}
	processor := singleProcessor(t, fake)

	_, err := processor.DeviceTemperature(TemperatureTypeEdge, TemperatureMetricCurrent)
	require.Error(t, err)

	st, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusNotSupported, st)
}

func TestDevicePowerManagement(t *testing.T) {
	fake := &fakeNative{powerManaged: true}
	processor := singleProcessor(t, fake)

	enabled, err := processor.DevicePowerManagement()
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestDeviceProcessListGrows(t *testing.T) {
	procs := make([]ProcInfo, 5)
	for i := range procs {
		procs[i].PID = uint32(1000 + i)
	}

	fake := &fakeNative{}
	fake.processListFn = func(count *uint32, buf []ProcInfo) uint32 {
		switch {
		case buf == nil:
			*count = 2

			return uint32(StatusOutOfResources)
		case len(buf) < len(procs):
			*count = uint32(len(procs))

			return uint32(StatusOutOfResources)
		default:
			*count = uint32(copy(buf, procs))

			return uint32(StatusSuccess)
		}
	}
	processor := singleProcessor(t, fake)

	list, err := processor.DeviceProcessList()
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, uint32(1000), list[0].PID)
	assert.Equal(t, uint32(1004), list[4].PID)
	assert.Equal(t, 3, fake.processListCalls, "expected one probe and two fill attempts")
}

func TestDeviceProcessListEmpty(t *testing.T) {
	fake := &fakeNative{}
	processor := singleProcessor(t, fake)

	list, err := processor.DeviceProcessList()
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, fake.processListCalls)
}

func TestDeviceProcessListGrowthBounded(t *testing.T) {
	fake := &fakeNative{}
	fake.processListFn = func(count *uint32, buf []ProcInfo) uint32 {
		// A pathological native library that always wants more
		*count = uint32(len(buf)) + 1

		return uint32(StatusOutOfResources)
	}
	processor := singleProcessor(t, fake)

	_, err := processor.DeviceProcessList()
	require.Error(t, err)

	st, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusOutOfResources, st)
	assert.Equal(t, 1+maxGrowthAttempts, fake.processListCalls)
}

func TestDeviceProcessListHardError(t *testing.T) {
	fake := &fakeNative{}
	fake.processListFn = func(count *uint32, _ []ProcInfo) uint32 {
		*count = 0

		return uint32(StatusNoPerm)
	}
	processor := singleProcessor(t, fake)

	_, err := processor.DeviceProcessList()
	require.Error(t, err)

	st, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusNoPerm, st)
}

func TestEndToEndTelemetryScenario(t *testing.T) {
	fake := &fakeNative{
		sockets: []socketToken{0x1},
		processors: map[socketToken][]processorToken{
			0x1: {0x2, 0x3},
		},
		memoryUsed: map[MemoryType]uint64{MemoryTypeVRAM: 4096},
	}

	lib, err := initNative(fake, InitAMDGPUs)
	require.NoError(t, err)
	assert.Equal(t, uint64(InitAMDGPUs), fake.initFlags)

	sockets, err := lib.SocketHandles()
	require.NoError(t, err)
	require.Len(t, sockets, 1)

	processors, err := sockets[0].ProcessorHandles()
	require.NoError(t, err)
	require.Len(t, processors, 2)

	used, err := processors[0].DeviceMemoryUsage(MemoryTypeVRAM)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), used)

	for _, processor := range processors {
		require.NoError(t, processor.Close())
	}
	require.NoError(t, sockets[0].Close())
	require.NoError(t, lib.Close())
	assert.Equal(t, 1, fake.shutdownCalls)
}
