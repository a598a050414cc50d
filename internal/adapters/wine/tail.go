package wine

import "sync"

// defaultTailLimit bounds the captured process output. PyInstaller logs are
// long; only the tail is useful for diagnostics.
const defaultTailLimit = 16 * 1024

// TailBuffer is an io.Writer keeping only the last limit bytes written.
// Writes from the child's stdout and stderr interleave, so it is locked.
type TailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

// NewTailBuffer creates a TailBuffer with the given byte limit.
func NewTailBuffer(limit int) *TailBuffer {
	if limit <= 0 {
		limit = defaultTailLimit
	}
	return &TailBuffer{limit: limit}
}

// Write appends p, discarding the oldest bytes beyond the limit.
func (t *TailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.limit {
		t.buf = t.buf[len(t.buf)-t.limit:]
	}
	return len(p), nil
}

// String returns the captured tail.
func (t *TailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
