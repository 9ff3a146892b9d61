package geometry

// handle addresses an arena slot. gen starts at 1, so the zero handle never
// resolves.
type handle struct {
	index uint32
	gen   uint32
}

type slot[T any] struct {
	gen  uint32
	live bool
	val  *T
}

// arena is a generation-checked slot map. Freed slots are reused with a
// bumped generation, so old handles to them stop resolving.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
}

func (a *arena[T]) insert(v *T) handle {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[i]
		s.gen++
		s.live = true
		s.val = v
		return handle{index: i, gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{gen: 1, live: true, val: v})
	return handle{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *arena[T]) get(h handle) *T {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s.val
}

func (a *arena[T]) remove(h handle) bool {
	if a.get(h) == nil {
		return false
	}
	s := &a.slots[h.index]
	s.live = false
	s.val = nil
	a.free = append(a.free, h.index)
	return true
}

// clone copies every slot, calling dup on live values.
func (a *arena[T]) clone(dup func(*T) *T) arena[T] {
	out := arena[T]{
		slots: make([]slot[T], len(a.slots)),
		free:  append([]uint32(nil), a.free...),
	}
	for i, s := range a.slots {
		out.slots[i] = slot[T]{gen: s.gen, live: s.live}
		if s.live {
			out.slots[i].val = dup(s.val)
		}
	}
	return out
}
