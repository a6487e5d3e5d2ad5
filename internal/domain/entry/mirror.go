package entry

// Mirror is the in-memory collection of a user's entries, kept in the
// durable store's order (creation timestamp descending). It holds both
// active and trashed entries; views filter on the deleted flag.
//
// The mirror is pure state: it performs no I/O and is only mutated by the
// lifecycle service after a confirmed durable write.
type Mirror struct {
	entries []Entry
}

// Replace swaps the mirror contents wholesale, preserving the given order.
func (m *Mirror) Replace(entries []Entry) {
	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
}

// Clear empties the mirror.
func (m *Mirror) Clear() {
	m.entries = nil
}

// Prepend inserts an entry at the head of the mirror.
func (m *Mirror) Prepend(e Entry) {
	m.entries = append([]Entry{e}, m.entries...)
}

// Get returns the entry with the given id, or false if absent.
func (m *Mirror) Get(id string) (Entry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Set replaces the entry with a matching id in place.
func (m *Mirror) Set(e Entry) bool {
	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			m.entries[i] = e
			return true
		}
	}
	return false
}

// SetDeleted flips the deleted flag of one entry in place.
func (m *Mirror) SetDeleted(id string, deleted bool) bool {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Deleted = deleted
			return true
		}
	}
	return false
}

// SetDeletedAll flips the deleted flag of every entry in place.
func (m *Mirror) SetDeletedAll(deleted bool) {
	for i := range m.entries {
		m.entries[i].Deleted = deleted
	}
}

// RemoveTrashed drops every trashed entry from the mirror and returns the
// ids that were removed.
func (m *Mirror) RemoveTrashed() []string {
	var removed []string
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.Deleted {
			removed = append(removed, e.ID)
		} else {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return removed
}

// ActiveView returns the entries with deleted=false, in mirror order.
func (m *Mirror) ActiveView() []Entry {
	return m.view(false)
}

// TrashedView returns the entries with deleted=true, in mirror order.
func (m *Mirror) TrashedView() []Entry {
	return m.view(true)
}

func (m *Mirror) view(deleted bool) []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Deleted == deleted {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the total number of entries, active and trashed.
func (m *Mirror) Len() int {
	return len(m.entries)
}

// AggregateHours sums the hours field across a view.
func AggregateHours(view []Entry) float64 {
	var total float64
	for _, e := range view {
		total += e.Hours
	}
	return total
}
