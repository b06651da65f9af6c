package amdsmi

import "sync"

// socketHandle pairs an opaque socket token with a retained reference to
// the owning library instance. The token stays valid for as long as the
// reference is held.
type socketHandle struct {
	core      *library
	token     socketToken
	closeOnce sync.Once
	closeErr  error
}

func (s *socketHandle) ProcessorHandles() ([]Processor, error) {
	tokens, err := enumerate(ErrProcessorEnumeration, func(count *uint32, buf []processorToken) uint32 {
		return s.core.native.ProcessorHandles(s.token, count, buf)
	})
	if err != nil {
		return nil, err
	}

	// Processors reference the library instance directly, not the socket;
	// the socket is not an independent owner and may be closed first.
	processors := make([]Processor, 0, len(tokens))
	for _, token := range tokens {
		s.core.retain()
		processors = append(processors, &processorHandle{core: s.core, token: token})
	}

	return processors, nil
}

func (s *socketHandle) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.core.release()
	})

	return s.closeErr
}
