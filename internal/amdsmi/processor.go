package amdsmi

import (
	"bytes"
	"sync"
	"unicode/utf8"

	"codeberg.org/mutker/amdsmictl/internal/errors"
)

// processorHandle pairs an opaque processor token with a retained reference
// to the owning library instance. Every query passes scratch output storage
// to the native call and reads it only after the status confirms success;
// the native contract guarantees full initialization only then.
type processorHandle struct {
	core      *library
	token     processorToken
	closeOnce sync.Once
	closeErr  error
}

func (p *processorHandle) DeviceUUID() (string, error) {
	errFactory := errors.New()

	buf := make([]byte, uuidBufferSize)
	length := uint32(uuidBufferSize)

	st := statusFromCode(p.core.native.DeviceUUID(p.token, &length, buf))
	if st != StatusSuccess {
		return "", errFactory.Wrap(ErrDeviceUUIDFailed, newStatusError(st))
	}

	if length > uuidBufferSize {
		length = uuidBufferSize
	}

	// The native call may or may not leave a terminator within the reported
	// length. Decode up to the first terminator if present, otherwise take
	// the reported-length prefix verbatim.
	raw := buf[:length]
	if idx := bytes.IndexByte(raw, 0); idx >= 0 {
		raw = raw[:idx]
	}

	if !utf8.Valid(raw) {
		// Reported with the status of the retrieval call, not a dedicated
		// decode error kind. Long-standing behavior; callers match on it.
		return "", errFactory.Wrap(ErrDeviceUUIDFailed, &statusError{status: st})
	}

	return string(raw), nil
}

func (p *processorHandle) DeviceActivity() (EngineUsage, error) {
	errFactory := errors.New()

	var info EngineUsage
	if st := statusFromCode(p.core.native.Activity(p.token, &info)); st != StatusSuccess {
		return EngineUsage{}, errFactory.Wrap(ErrDeviceActivityFailed, newStatusError(st))
	}

	return info, nil
}

func (p *processorHandle) DeviceEnergyConsumption() (EnergyConsumption, error) {
	errFactory := errors.New()

	var consumption EnergyConsumption
	st := statusFromCode(p.core.native.EnergyCount(
		p.token,
		&consumption.Energy,
		&consumption.Resolution,
		&consumption.Timestamp,
	))
	if st != StatusSuccess {
		return EnergyConsumption{}, errFactory.Wrap(ErrEnergyFailed, newStatusError(st))
	}

	return consumption, nil
}

func (p *processorHandle) DeviceMemoryUsage(memType MemoryType) (uint64, error) {
	errFactory := errors.New()

	var used uint64
	if st := statusFromCode(p.core.native.MemoryUsage(p.token, memType, &used)); st != StatusSuccess {
		return 0, errFactory.Wrap(ErrMemoryUsageFailed, newStatusError(st))
	}

	return used, nil
}

func (p *processorHandle) DevicePowerConsumption() (PowerInfo, error) {
	errFactory := errors.New()

	var info PowerInfo
	if st := statusFromCode(p.core.native.PowerInfo(p.token, &info)); st != StatusSuccess {
		return PowerInfo{}, errFactory.Wrap(ErrPowerInfoFailed, newStatusError(st))
	}

	return info, nil
}

func (p *processorHandle) DevicePowerManagement() (bool, error) {
	errFactory := errors.New()

	var enabled bool
	if st := statusFromCode(p.core.native.PowerManagementEnabled(p.token, &enabled)); st != StatusSuccess {
		return false, errFactory.Wrap(ErrPowerManagementFailed, newStatusError(st))
	}

	return enabled, nil
}

func (p *processorHandle) DeviceTemperature(sensor TemperatureType, metric TemperatureMetric) (int64, error) {
	errFactory := errors.New()

	var temperature int64
	if st := statusFromCode(p.core.native.TempMetric(p.token, sensor, metric, &temperature)); st != StatusSuccess {
		return 0, errFactory.Wrap(ErrTemperatureFailed, newStatusError(st))
	}

	return temperature, nil
}

func (p *processorHandle) DeviceVoltage(sensor VoltageType, metric VoltageMetric) (int64, error) {
	errFactory := errors.New()

	var voltage int64
	if st := statusFromCode(p.core.native.VoltMetric(p.token, sensor, metric, &voltage)); st != StatusSuccess {
		return 0, errFactory.Wrap(ErrVoltageFailed, newStatusError(st))
	}

	return voltage, nil
}

func (p *processorHandle) DeviceProcessList() ([]ProcInfo, error) {
	return enumerateGrowing(ErrProcessListFailed, func(count *uint32, buf []ProcInfo) uint32 {
		return p.core.native.ProcessList(p.token, count, buf)
	})
}

func (p *processorHandle) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.core.release()
	})

	return p.closeErr
}
