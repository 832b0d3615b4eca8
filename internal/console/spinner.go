package console

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a single status line while a command runs. Only
// used on TTY output; callers must stop it before printing anything
// else.
type spinner struct {
	out     io.Writer
	message string

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	frameIdx int
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.run()
}

func (s *spinner) stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
	s.clearLine()
}

func (s *spinner) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frameIdx = (s.frameIdx + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *spinner) render() {
	s.mu.Lock()
	frame := spinnerFrames[s.frameIdx]
	msg := s.message
	s.mu.Unlock()

	fmt.Fprintf(s.out, "\r\033[K%s %s", frame, msg)
}

func (s *spinner) clearLine() {
	fmt.Fprint(s.out, "\r\033[K")
}
