package amdsmi

import "codeberg.org/mutker/amdsmictl/internal/errors"

const (
	// Initialization and lifecycle errors
	ErrLibraryLoad    = errors.ErrorCode("amdsmi_library_load_failed")
	ErrInitFailed     = errors.ErrorCode("amdsmi_init_failed")
	ErrShutdownFailed = errors.ErrorCode("amdsmi_shutdown_failed")

	// Enumeration errors
	ErrSocketEnumeration    = errors.ErrorCode("amdsmi_socket_enumeration_failed")
	ErrProcessorEnumeration = errors.ErrorCode("amdsmi_processor_enumeration_failed")

	// Telemetry query errors
	ErrDeviceUUIDFailed      = errors.ErrorCode("amdsmi_device_uuid_failed")
	ErrDeviceActivityFailed  = errors.ErrorCode("amdsmi_device_activity_failed")
	ErrEnergyFailed          = errors.ErrorCode("amdsmi_energy_consumption_failed")
	ErrMemoryUsageFailed     = errors.ErrorCode("amdsmi_memory_usage_failed")
	ErrPowerInfoFailed       = errors.ErrorCode("amdsmi_power_info_failed")
	ErrPowerManagementFailed = errors.ErrorCode("amdsmi_power_management_failed")
	ErrTemperatureFailed     = errors.ErrorCode("amdsmi_temperature_failed")
	ErrVoltageFailed         = errors.ErrorCode("amdsmi_voltage_failed")
	ErrProcessListFailed     = errors.ErrorCode("amdsmi_process_list_failed")
)

// statusError carries the normalized native status of a failed call
type statusError struct {
	status Status
}

func (e *statusError) Error() string {
	return e.status.String()
}

func (e *statusError) Status() Status {
	return e.status
}

// newStatusError creates an error from a normalized status, or nil on success
func newStatusError(st Status) error {
	if st == StatusSuccess {
		return nil
	}

	return &statusError{status: st}
}

// StatusOf extracts the native status carried by err, if any
func StatusOf(err error) (Status, bool) {
	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.status, true
	}

	return StatusUnknownError, false
}
