// Package notify carries user-visible notices out of the core layers. It is
// the console analogue of the toast strip: every mutation emits exactly one
// success or failure notice, and callers decide how to surface them.
package notify

import (
	"log"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-visible notices. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that writes notices to the process log.
// cmd/main wires this one; tests substitute a recorder.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Success(message string) {
	log.Printf("NOTICE success: %s", message)
}

func (logNotifier) Error(message string) {
	log.Printf("NOTICE error: %s", message)
}

// Buffer queues notices in memory so a caller can drain them, the way the
// toast strip drains its queue. Safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	notices []Notice
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Success(message string) {
	b.push(Notice{Level: LevelSuccess, Message: message})
}

func (b *Buffer) Error(message string) {
	b.push(Notice{Level: LevelError, Message: message})
}

func (b *Buffer) push(n Notice) {
	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.mu.Unlock()
}

// Drain returns the queued notices and empties the buffer.
func (b *Buffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	return out
}

type fanout struct {
	targets []Notifier
}

// Fanout duplicates every notice to all targets, typically the process log
// plus the buffer the UI drains.
func Fanout(targets ...Notifier) Notifier {
	return fanout{targets: targets}
}

func (f fanout) Success(message string) {
	for _, t := range f.targets {
		t.Success(message)
	}
}

func (f fanout) Error(message string) {
	for _, t := range f.targets {
		t.Error(message)
	}
}
