package livequery

import (
	"sync"
)

// Differ decides when a snapshot delivery warrants a one-shot alert. The
// store replays the full result set on every change, so without this guard a
// consumer would re-alert the same newest item on every delivery. A Differ
// belongs to one connection; its memory lives and dies with it.
type Differ struct {
	mu   sync.Mutex
	last map[string]string
}

func NewDiffer() *Differ {
	return &Differ{last: make(map[string]string)}
}

// Observe inspects a newest-first snapshot for stream key. It returns the
// newest document and true exactly once per distinct newest-id transition,
// and only when that document is unread (a missing read field counts as
// unread). The remembered id is updated unconditionally, so a read newest
// item still suppresses replays.
func (d *Differ) Observe(key string, docs []Document) (Document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(docs) == 0 {
		return Document{}, false
	}

	newest := docs[0]
	prev, seen := d.last[key]
	d.last[key] = newest.ID

	if seen && prev == newest.ID {
		return Document{}, false
	}

	if read, ok := newest.Data["read"].(bool); ok && read {
		return Document{}, false
	}

	return newest, true
}
