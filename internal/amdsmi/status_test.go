package amdsmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromCodeRecognizedCodes(t *testing.T) {
	recognized := []Status{
		StatusSuccess,
		StatusInval,
		StatusNotSupported,
		StatusOutOfResources,
		StatusNoPerm,
		StatusNotYetImplemented,
		StatusUnexpectedData,
	}

	for _, st := range recognized {
		assert.Equal(t, st, statusFromCode(uint32(st)), "code %d must round-trip", uint32(st))
	}
}

func TestStatusFromCodeCollapsesEverythingElse(t *testing.T) {
	// Codes with named constants but no conversion case collapse too
	collapsed := []uint32{
		uint32(StatusTimeout),
		uint32(StatusRetry),
		uint32(StatusIo),
		uint32(StatusDriverNotLoaded),
		uint32(StatusHsmpTimeout),
		uint32(StatusMapError),
		9999,
	}

	for _, code := range collapsed {
		assert.Equal(t, StatusUnknownError, statusFromCode(code), "code %d must collapse", code)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "out_of_resources", StatusOutOfResources.String())
	assert.Equal(t, "unknown_error", StatusUnknownError.String())
	assert.Equal(t, "unknown_error(1234)", Status(1234).String())
}

func TestNewStatusError(t *testing.T) {
	assert.Nil(t, newStatusError(StatusSuccess))

	err := newStatusError(StatusNoPerm)
	assert.EqualError(t, err, "no_permission")

	st, ok := StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, StatusNoPerm, st)
}
