//go:build !linux

package amdsmi

import "fmt"

func loadNativeLib() (nativeLib, error) {
	return nil, fmt.Errorf("libamd_smi.so is only available on linux")
}
