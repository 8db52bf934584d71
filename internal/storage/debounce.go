// internal/storage/debounce.go
package storage

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the coalescing window for high-frequency
// edits: a burst of writes within the window produces one durable write
// taken from the latest value.
const DefaultDebounceWindow = time.Second

// Debouncer coalesces writes per key. Each Schedule call replaces any
// pending flush for that key and restarts its single-shot timer; when
// the window elapses only the most recent flush runs. Flush and
// FlushAll force pending writes out immediately (shutdown, navigation).
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*pendingFlush
}

type pendingFlush struct {
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a debouncer with the given window; window <= 0
// falls back to DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingFlush),
	}
}

// Schedule registers fn as the flush for key and (re)starts the window.
// fn must capture the latest value at call time, not at schedule time,
// or be replaced on every edit; the services here replace it.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingFlush{fn: fn}
	p.timer = time.AfterFunc(d.window, func() { d.fire(key, p) })
	d.pending[key] = p
}

// fire runs a pending flush when its timer expires, unless it has been
// superseded by a later Schedule or an explicit Flush.
func (d *Debouncer) fire(key string, p *pendingFlush) {
	d.mu.Lock()
	current, ok := d.pending[key]
	if !ok || current != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	p.fn()
}

// Cancel discards the pending write for key without running it. Used
// when a caller persists the authoritative value directly.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush runs the pending write for key immediately, if any.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if ok {
		p.fn()
	}
}

// FlushAll runs every pending write immediately. Called on shutdown so
// the last edit in a burst always persists.
func (d *Debouncer) FlushAll() {
	d.mu.Lock()
	flushes := make([]*pendingFlush, 0, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
		flushes = append(flushes, p)
	}
	d.mu.Unlock()

	for _, p := range flushes {
		p.fn()
	}
}
