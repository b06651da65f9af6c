package amdsmi

// fakeNative is a programmable nativeLib double. Zero-valued status fields
// mean success; call counters record how often each entry point ran,
// including sizing probes.
type fakeNative struct {
	initStatus uint32
	initFlags  uint64
	initCalls  int

	shutdownStatus uint32
	shutdownCalls  int

	sockets         []socketToken
	socketStatus    uint32
	socketFillCount uint32 // overrides the fill call's written count when non-zero
	socketCalls     int

	processors     map[socketToken][]processorToken
	processorCalls int

	uuid       []byte
	uuidLen    uint32
	uuidStatus uint32

	activity       EngineUsage
	activityStatus uint32

	energy       EnergyConsumption
	energyStatus uint32

	memoryUsed   map[MemoryType]uint64
	memoryStatus uint32

	power       PowerInfo
	powerStatus uint32

	powerManaged bool
	pmStatus     uint32

	temperature int64
	tempStatus  uint32

	voltage    int64
	voltStatus uint32

	processListFn    func(count *uint32, buf []ProcInfo) uint32
	processListCalls int
}

func (f *fakeNative) Init(flags uint64) uint32 {
	f.initCalls++
	f.initFlags = flags

	return f.initStatus
}

func (f *fakeNative) Shutdown() uint32 {
	f.shutdownCalls++

	return f.shutdownStatus
}

func (f *fakeNative) SocketHandles(count *uint32, handles []socketToken) uint32 {
	f.socketCalls++
	if f.socketStatus != 0 {
		return f.socketStatus
	}

	if handles == nil {
		*count = uint32(len(f.sockets))

		return 0
	}

	written := copy(handles, f.sockets)
	*count = uint32(written)
	if f.socketFillCount != 0 {
		*count = f.socketFillCount
	}

	return 0
}

func (f *fakeNative) ProcessorHandles(socket socketToken, count *uint32, handles []processorToken) uint32 {
	f.processorCalls++
	tokens := f.processors[socket]

	if handles == nil {
		*count = uint32(len(tokens))

		return 0
	}

	*count = uint32(copy(handles, tokens))

	return 0
}

func (f *fakeNative) DeviceUUID(_ processorToken, length *uint32, buf []byte) uint32 {
	if f.uuidStatus != 0 {
		return f.uuidStatus
	}

	copy(buf, f.uuid)
	*length = f.uuidLen

	return 0
}

func (f *fakeNative) Activity(_ processorToken, out *EngineUsage) uint32 {
	if f.activityStatus != 0 {
		return f.activityStatus
	}

	*out = f.activity

	return 0
}

func (f *fakeNative) EnergyCount(_ processorToken, energy *uint64, resolution *float32, timestamp *uint64) uint32 {
	if f.energyStatus != 0 {
		return f.energyStatus
	}

	*energy = f.energy.Energy
	*resolution = f.energy.Resolution
	*timestamp = f.energy.Timestamp

	return 0
}

func (f *fakeNative) MemoryUsage(_ processorToken, memType MemoryType, used *uint64) uint32 {
	if f.memoryStatus != 0 {
		return f.memoryStatus
	}

	*used = f.memoryUsed[memType]

	return 0
}

func (f *fakeNative) PowerInfo(_ processorToken, out *PowerInfo) uint32 {
	if f.powerStatus != 0 {
		return f.powerStatus
	}

	*out = f.power

	return 0
}

func (f *fakeNative) PowerManagementEnabled(_ processorToken, enabled *bool) uint32 {
	if f.pmStatus != 0 {
		return f.pmStatus
	}

	*enabled = f.powerManaged

	return 0
}

func (f *fakeNative) TempMetric(_ processorToken, _ TemperatureType, _ TemperatureMetric, value *int64) uint32 {
	if f.tempStatus != 0 {
		return f.tempStatus
	}

	*value = f.temperature

	return 0
}

func (f *fakeNative) VoltMetric(_ processorToken, _ VoltageType, _ VoltageMetric, value *int64) uint32 {
	if f.voltStatus != 0 {
		return f.voltStatus
	}

	*value = f.voltage

	return 0
}

func (f *fakeNative) ProcessList(_ processorToken, count *uint32, buf []ProcInfo) uint32 {
	f.processListCalls++
	if f.processListFn != nil {
		return f.processListFn(count, buf)
	}

	*count = 0

	return 0
}
