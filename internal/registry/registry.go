// Package registry implements the kind registry & dispatch of spec §4.5 as a
// static table, populated by each handler's own init() function — the same
// driver-registration idiom as database/sql: a handler module registers a
// callable under each dispatch signature it accepts, and dispatch becomes a
// pure table lookup. The table is keyed by signature alone; it records no
// Kind for a handler.
package registry

import (
	"fmt"
	"sync"
)

// Handler extracts one archive into a target directory, returning any
// non-fatal warnings and raising only on fatal failure. Eligibility by Kind
// is decided separately by the typing collaborator (internal/sniff); the
// registry's only axis is the dispatch signature.
type Handler func(location, targetDir string) ([]string, error)

var (
	mu       sync.RWMutex
	handlers = map[string]Handler{}
)

// Register associates a dispatch signature with a Handler. Called from each
// handler module's init().
func Register(signature string, h Handler) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := handlers[signature]; exists {
		panic(fmt.Sprintf("registry: duplicate registration for signature %q", signature))
	}
	handlers[signature] = h
}

// Lookup returns the Handler registered for signature.
func Lookup(signature string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()

	h, ok := handlers[signature]
	return h, ok
}
