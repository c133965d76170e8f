package pkg

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"
)

// TeeWriter copies every write to all of its sinks. A failing sink does not
// stop the others, and the write only fails when no sink took the bytes.
type TeeWriter struct {
	mu    sync.Mutex
	sinks []io.Writer
}

func NewTeeWriter(sinks ...io.Writer) *TeeWriter {
	tw := &TeeWriter{}
	for _, s := range sinks {
		if s != nil {
			tw.sinks = append(tw.sinks, s)
		}
	}
	return tw
}

func (tw *TeeWriter) Sinks() int {
	return len(tw.sinks)
}

func (tw *TeeWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	var (
		errs error
		ok   int
	)
	for i, sink := range tw.sinks {
		n, err := sink.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sink %d: %w", i, err))
			continue
		}
		ok++
	}

	if ok == 0 && len(tw.sinks) > 0 {
		return 0, errs
	}
	return len(p), errs
}
