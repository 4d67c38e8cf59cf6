package editor

// DefaultUndoThreshold is the number of plain insertions coalesced into one
// undo step.
const DefaultUndoThreshold = 20

// Snapshot is a full copy of the editable state.
type Snapshot struct {
	Cursor    Cursor
	Window    *Window
	Selection Selection
}

// History is a pair of snapshot stacks. Any push to the undo stack clears
// the redo stack.
type History struct {
	// Threshold is the number of unforced records between snapshots.
	Threshold int
	// Limit caps each stack; 0 means unbounded.
	Limit int

	undo    []Snapshot
	redo    []Snapshot
	pending int
}

// NewHistory returns an empty history.
func NewHistory(threshold, limit int) *History {
	if threshold <= 0 {
		threshold = DefaultUndoThreshold
	}
	return &History{Threshold: threshold, Limit: limit}
}

// Record counts an edit and pushes snap when the undo stack is empty, the
// threshold is reached, or force is set. snap must describe the state before
// the edit is applied.
func (h *History) Record(snap Snapshot, force bool) {
	h.pending++
	if len(h.undo) > 0 && h.pending < h.Threshold && !force {
		return
	}
	h.undo = h.push(h.undo, snap)
	h.redo = nil
	h.pending = 0
}

// Undo pops the last snapshot, saving current for redo. ok is false and
// current is returned unchanged when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, current)
	h.pending = 0
	return prev, true
}

// Redo reverses the last Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, current)
	h.pending = 0
	return next, true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

func (h *History) push(stack []Snapshot, snap Snapshot) []Snapshot {
	stack = append(stack, snap)
	if h.Limit > 0 && len(stack) > h.Limit {
		stack = append(stack[:0], stack[len(stack)-h.Limit:]...)
	}
	return stack
}
