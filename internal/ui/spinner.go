package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner animates a single-line wait indicator while a model call is in
// flight. It must be stopped before anything else writes to the terminal.
type Spinner struct {
	w        io.Writer
	interval time.Duration

	mu      sync.Mutex
	done    chan struct{}
	stopped chan struct{}
}

func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, interval: 120 * time.Millisecond}
}

// Start begins animating. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go func(done, stopped chan struct{}) {
		defer close(stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				// Erase the spinner line before handing the terminal back.
				fmt.Fprintf(s.w, "\r%s\r", spaces(len(label)+2))
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s", DimStyle.Render(spinnerFrames[frame%len(spinnerFrames)]), label)
				frame++
			}
		}
	}(s.done, s.stopped)
}

// Stop halts the animation and clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return
	}
	close(s.done)
	<-s.stopped
	s.done = nil
	s.stopped = nil
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
