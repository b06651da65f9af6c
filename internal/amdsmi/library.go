// Package amdsmi wraps the vendor AMD SMI shared library behind statically
// checked handles. The library instance, sockets and processors form an
// ownership tree held together by reference counting: every derived handle
// keeps the library instance alive, and the native shutdown entry point
// runs exactly once, when the last handle is closed.
//
// The native library supports a single live instance per process; callers
// must not hold two initialized Library values at once. Thread safety of
// concurrent native calls is whatever libamd_smi.so itself guarantees; this
// package adds no serialization of its own.
package amdsmi

import (
	"sync"
	"sync/atomic"

	"codeberg.org/mutker/amdsmictl/internal/errors"
)

// library is the shared core behind every handle. refs counts the Library
// handle plus all live Socket and Processor handles.
type library struct {
	native nativeLib
	refs   atomic.Int64
}

func (l *library) retain() {
	l.refs.Add(1)
}

// release drops one reference and shuts the native library down when the
// last one goes. The atomic counter reaches zero exactly once, so the
// shutdown entry point cannot run twice regardless of close ordering.
func (l *library) release() error {
	if l.refs.Add(-1) != 0 {
		return nil
	}

	errFactory := errors.New()
	if st := statusFromCode(l.native.Shutdown()); st != StatusSuccess {
		return errFactory.Wrap(ErrShutdownFailed, newStatusError(st))
	}

	return nil
}

type libraryHandle struct {
	core      *library
	closeOnce sync.Once
	closeErr  error
}

// Init loads libamd_smi.so, resolves the required entry points and runs the
// native initialization with the given hardware-class flags. Failure to
// locate the library or a symbol surfaces as ErrLibraryLoad; a non-success
// status from the native init call surfaces as ErrInitFailed carrying that
// status.
func Init(flags InitFlags) (Library, error) {
	errFactory := errors.New()

	native, err := loadNativeLib()
	if err != nil {
		return nil, errFactory.Wrap(ErrLibraryLoad, err)
	}

	return initNative(native, flags)
}

// initNative runs the native initialization against an already loaded
// surface. Split out from Init so tests can drive the handle hierarchy
// with a double.
func initNative(native nativeLib, flags InitFlags) (Library, error) {
	errFactory := errors.New()

	if st := statusFromCode(native.Init(uint64(flags))); st != StatusSuccess {
		return nil, errFactory.Wrap(ErrInitFailed, newStatusError(st))
	}

	core := &library{native: native}
	core.refs.Store(1)

	return &libraryHandle{core: core}, nil
}

func (h *libraryHandle) SocketHandles() ([]Socket, error) {
	tokens, err := enumerate(ErrSocketEnumeration, func(count *uint32, buf []socketToken) uint32 {
		return h.core.native.SocketHandles(count, buf)
	})
	if err != nil {
		return nil, err
	}

	sockets := make([]Socket, 0, len(tokens))
	for _, token := range tokens {
		h.core.retain()
		sockets = append(sockets, &socketHandle{core: h.core, token: token})
	}

	return sockets, nil
}

func (h *libraryHandle) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.core.release()
	})

	return h.closeErr
}
