package client

import "sync"

// Sequencer guards against overlapping in-flight requests applying stale
// results. A caller begins a request to obtain a token, and applies the
// response only if Latest reports the token still belongs to the most
// recently begun request:
//
//	token := seq.Begin()
//	items, err := c.ListContent(ctx, opts)
//	if seq.Latest(token) {
//	    // apply items
//	}
type Sequencer struct {
	mu   sync.Mutex
	next uint64
}

// Begin registers a new request and returns its token.
func (s *Sequencer) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Latest reports whether token belongs to the most recently begun request.
func (s *Sequencer) Latest(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.next
}
