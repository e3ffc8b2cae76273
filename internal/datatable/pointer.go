package datatable

import "sync"

// PointerSource delivers document-level pointer-down events to the table's
// filter menu. insideMenu is true when the event landed inside the menu.
type PointerSource interface {
	Subscribe(fn func(insideMenu bool)) (unsubscribe func())
}

// PointerHub is an in-process PointerSource. The web layer asks it whether
// an outside-pointer listener is live to decide whether to emit one.
type PointerHub struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(bool)
}

// NewPointerHub returns an empty hub.
func NewPointerHub() *PointerHub {
	return &PointerHub{listeners: make(map[int]func(bool))}
}

// Subscribe implements PointerSource. The returned function is idempotent.
func (h *PointerHub) Subscribe(fn func(insideMenu bool)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// PointerDown dispatches an event to every live listener.
func (h *PointerHub) PointerDown(insideMenu bool) {
	h.mu.Lock()
	fns := make([]func(bool), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(insideMenu)
	}
}

// Listeners returns the number of live listeners.
func (h *PointerHub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
