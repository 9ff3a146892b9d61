package area

// History keeps undo and redo snapshots of an area. Every snapshot is a
// clone, so editing the current area never changes a stored one.
type History struct {
	undo  []*Area
	redo  []*Area
	limit int
}

// NewHistory keeps at most limit undo steps. 0 means no limit.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push stores a snapshot of cur before an edit and clears the redo list.
func (h *History) Push(cur *Area) {
	h.undo = append(h.undo, cur.Clone())
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the area before the last edit. ok is false when there is
// nothing to undo.
func (h *History) Undo(cur *Area) (prev *Area, ok bool) {
	if len(h.undo) == 0 {
		return cur, false
	}
	prev = h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur.Clone())
	return prev, true
}

// Redo returns the area the last Undo went back from.
func (h *History) Redo(cur *Area) (next *Area, ok bool) {
	if len(h.redo) == 0 {
		return cur, false
	}
	next = h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur.Clone())
	return next, true
}

// CanUndo reports whether Undo would do something.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do something.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
