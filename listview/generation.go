package listview

import "sync/atomic"

// Generation hands out fetch tokens so that only the most recently started
// refresh may commit its result. A refresh that finishes after a newer one
// began simply discards its rows.
type Generation struct {
	current atomic.Uint64
}

// Begin marks the start of a refresh and returns its token.
func (g *Generation) Begin() uint64 {
	return g.current.Add(1)
}

// Commit reports whether the token still belongs to the newest refresh.
func (g *Generation) Commit(token uint64) bool {
	return g.current.Load() == token
}
