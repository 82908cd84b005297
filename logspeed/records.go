package logspeed

import "time"

// Record holds the timings captured for one checkpoint label.
type Record struct {
	Label   string
	Elapsed time.Duration // since the previous checkpoint or session start
	Total   time.Duration // since session start
}

// records is an insertion-ordered set of checkpoint records keyed by label.
// Overwriting an existing label keeps its original position.
type records struct {
	items []Record
	index map[string]int
}

func newRecords() *records {
	return &records{index: make(map[string]int)}
}

func (r *records) put(rec Record) {
	if i, ok := r.index[rec.Label]; ok {
		r.items[i] = rec
		return
	}
	r.index[rec.Label] = len(r.items)
	r.items = append(r.items, rec)
}

func (r *records) len() int {
	return len(r.items)
}

// snapshot returns a copy of the records in insertion order.
func (r *records) snapshot() []Record {
	out := make([]Record, len(r.items))
	copy(out, r.items)
	return out
}

func (r *records) clear() {
	r.items = nil
	r.index = make(map[string]int)
}
