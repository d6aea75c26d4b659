package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amiyamandal-dev/bizbrief/internal/loop"
)

// runMsg carries a function onto the bubbletea event loop
type runMsg struct {
	fn func()
}

// ProgramScheduler runs controller functions inside the Update of a
// bubbletea program, which makes the program's event loop the UI loop.
type ProgramScheduler struct {
	mu   sync.RWMutex
	send func(tea.Msg)
	wg   sync.WaitGroup
}

var _ loop.Scheduler = (*ProgramScheduler)(nil)

// NewProgramScheduler creates a scheduler. Nothing runs until Attach.
func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{}
}

// Attach binds the scheduler to the program that will run posted functions
func (s *ProgramScheduler) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = p.Send
}

// Post queues fn on the program loop
func (s *ProgramScheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()
	if send == nil {
		return
	}
	send(runMsg{fn: fn})
}

// Go runs work in the background and posts its completion
func (s *ProgramScheduler) Go(work func() func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if done := work(); done != nil {
			s.Post(done)
		}
	}()
}

// Wait blocks until background work has finished
func (s *ProgramScheduler) Wait() {
	s.wg.Wait()
}
