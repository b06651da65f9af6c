package amdsmi

import "codeberg.org/mutker/amdsmictl/internal/errors"

// maxGrowthAttempts bounds the growing-buffer retry loop. The native
// library reports the required count alongside out-of-resources, so a
// second attempt normally suffices; the bound only guards against a native
// implementation that keeps raising its answer.
const maxGrowthAttempts = 8

// enumerate runs the exact two-call retrieval protocol: a null-buffer probe
// that yields the authoritative count, then a single fill call with a
// buffer of exactly that size. The fill call updates the count to the
// number of entries actually written; the result is truncated to that
// number, never retried. A probe count of zero short-circuits without a
// second native call.
func enumerate[T any](code errors.ErrorCode, call func(count *uint32, buf []T) uint32) ([]T, error) {
	errFactory := errors.New()

	var count uint32
	if st := statusFromCode(call(&count, nil)); st != StatusSuccess {
		return nil, errFactory.Wrap(code, newStatusError(st))
	}

	if count == 0 {
		return nil, nil
	}

	buf := make([]T, count)
	if st := statusFromCode(call(&count, buf)); st != StatusSuccess {
		return nil, errFactory.Wrap(code, newStatusError(st))
	}

	// The fill call's count is authoritative. Entries beyond it were never
	// written and must not be exposed.
	if int(count) < len(buf) {
		buf = buf[:count]
	}

	return buf, nil
}

// enumerateGrowing runs the growing-buffer retrieval protocol used for
// collections whose size can change between calls. The probe accepts
// out-of-resources as a normal outcome (the count is still a usable
// estimate); each fill attempt either succeeds, or reports
// out-of-resources together with the larger count to retry with. Any other
// status aborts.
func enumerateGrowing[T any](code errors.ErrorCode, call func(count *uint32, buf []T) uint32) ([]T, error) {
	errFactory := errors.New()

	var count uint32
	switch st := statusFromCode(call(&count, nil)); st {
	case StatusSuccess, StatusOutOfResources:
	default:
		return nil, errFactory.Wrap(code, newStatusError(st))
	}

	if count == 0 {
		return nil, nil
	}

	for attempt := 0; attempt < maxGrowthAttempts; attempt++ {
		buf := make([]T, count)
		filled := count

		switch st := statusFromCode(call(&filled, buf)); st {
		case StatusSuccess:
			// Only the first `filled` entries are initialized
			if int(filled) < len(buf) {
				buf = buf[:filled]
			}

			return buf, nil
		case StatusOutOfResources:
			count = filled
		default:
			return nil, errFactory.Wrap(code, newStatusError(st))
		}
	}

	return nil, errFactory.Wrap(code, newStatusError(StatusOutOfResources))
}
