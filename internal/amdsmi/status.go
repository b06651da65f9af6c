package amdsmi

import "fmt"

// Status is the normalized outcome code of a native AMD SMI call. The
// constants below name every code the vendor header defines so callers can
// match on them, but statusFromCode only recognizes a small subset
// individually; any other raw code collapses to StatusUnknownError.
type Status uint32

const (
	StatusSuccess            Status = 0
	StatusInval              Status = 1
	StatusNotSupported       Status = 2
	StatusNotYetImplemented  Status = 3
	StatusFailLoadModule     Status = 4
	StatusFailLoadSymbol     Status = 5
	StatusDrmError           Status = 6
	StatusApiFailed          Status = 7
	StatusTimeout            Status = 8
	StatusRetry              Status = 9
	StatusNoPerm             Status = 10
	StatusInterrupt          Status = 11
	StatusIo                 Status = 12
	StatusAddressFault       Status = 13
	StatusFileError          Status = 14
	StatusOutOfResources     Status = 15
	StatusInternalException  Status = 16
	StatusInputOutOfBounds   Status = 17
	StatusInitError          Status = 18
	StatusRefcountOverflow   Status = 19
	StatusDirectoryNotFound  Status = 20
	StatusBusy               Status = 30
	StatusNotFound           Status = 31
	StatusNotInit            Status = 32
	StatusNoSlot             Status = 33
	StatusDriverNotLoaded    Status = 34
	StatusMoreData           Status = 35
	StatusNoData             Status = 40
	StatusInsufficientSize   Status = 41
	StatusUnexpectedSize     Status = 42
	StatusUnexpectedData     Status = 43
	StatusNonAmdCpu          Status = 44
	StatusNoEnergyDrv        Status = 45
	StatusNoMsrDrv           Status = 46
	StatusNoHsmpDrv          Status = 47
	StatusNoHsmpSup          Status = 48
	StatusNoHsmpMsgSup       Status = 49
	StatusHsmpTimeout        Status = 50
	StatusNoDrv              Status = 51
	StatusFileNotFound       Status = 52
	StatusArgPtrNull         Status = 53
	StatusAmdgpuRestartErr   Status = 54
	StatusSettingUnavailable Status = 55
	StatusMapError           Status = 0xFFFFFFFE
	StatusUnknownError       Status = 0xFFFFFFFF
)

var statusNames = map[Status]string{
	StatusSuccess:            "success",
	StatusInval:              "invalid_argument",
	StatusNotSupported:       "not_supported",
	StatusNotYetImplemented:  "not_yet_implemented",
	StatusFailLoadModule:     "fail_load_module",
	StatusFailLoadSymbol:     "fail_load_symbol",
	StatusDrmError:           "drm_error",
	StatusApiFailed:          "api_failed",
	StatusTimeout:            "timeout",
	StatusRetry:              "retry",
	StatusNoPerm:             "no_permission",
	StatusInterrupt:          "interrupt",
	StatusIo:                 "io_error",
	StatusAddressFault:       "address_fault",
	StatusFileError:          "file_error",
	StatusOutOfResources:     "out_of_resources",
	StatusInternalException:  "internal_exception",
	StatusInputOutOfBounds:   "input_out_of_bounds",
	StatusInitError:          "init_error",
	StatusRefcountOverflow:   "refcount_overflow",
	StatusDirectoryNotFound:  "directory_not_found",
	StatusBusy:               "busy",
	StatusNotFound:           "not_found",
	StatusNotInit:            "not_initialized",
	StatusNoSlot:             "no_slot",
	StatusDriverNotLoaded:    "driver_not_loaded",
	StatusMoreData:           "more_data",
	StatusNoData:             "no_data",
	StatusInsufficientSize:   "insufficient_size",
	StatusUnexpectedSize:     "unexpected_size",
	StatusUnexpectedData:     "unexpected_data",
	StatusNonAmdCpu:          "non_amd_cpu",
	StatusNoEnergyDrv:        "no_energy_driver",
	StatusNoMsrDrv:           "no_msr_driver",
	StatusNoHsmpDrv:          "no_hsmp_driver",
	StatusNoHsmpSup:          "no_hsmp_support",
	StatusNoHsmpMsgSup:       "no_hsmp_message_support",
	StatusHsmpTimeout:        "hsmp_timeout",
	StatusNoDrv:              "no_driver",
	StatusFileNotFound:       "file_not_found",
	StatusArgPtrNull:         "null_argument_pointer",
	StatusAmdgpuRestartErr:   "amdgpu_restart_error",
	StatusSettingUnavailable: "setting_unavailable",
	StatusMapError:           "map_error",
	StatusUnknownError:       "unknown_error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("unknown_error(%d)", uint32(s))
}

// statusFromCode normalizes a raw native status code. Only the codes listed
// here are recognized individually; everything else, including codes that
// have a named constant above, maps to StatusUnknownError. This mirrors the
// conversion the library has always shipped with and callers depend on.
func statusFromCode(code uint32) Status {
	switch st := Status(code); st {
	case StatusSuccess,
		StatusInval,
		StatusNotSupported,
		StatusOutOfResources,
		StatusNoPerm,
		StatusNotYetImplemented,
		StatusUnexpectedData:
		return st
	default:
		return StatusUnknownError
	}
}
