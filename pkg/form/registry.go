package form

// compactMinSlots keeps small registries from compacting on every removal.
const compactMinSlots = 32

// registry is an arena of fields addressed by FieldID. Removed slots are
// tombstoned and the arena is compacted once more than half of it is dead.
type registry struct {
	slots []*Field
	index map[FieldID]int
	live  int
}

func newRegistry() *registry {
	return &registry{index: make(map[FieldID]int)}
}

func (r *registry) add(f *Field) {
	r.index[f.id] = len(r.slots)
	r.slots = append(r.slots, f)
	r.live++
}

func (r *registry) get(id FieldID) *Field {
	if i, ok := r.index[id]; ok {
		return r.slots[i]
	}
	return nil
}

func (r *registry) remove(id FieldID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.slots[i] = nil
	delete(r.index, id)
	r.live--

	if len(r.slots) >= compactMinSlots && r.live*2 < len(r.slots) {
		r.compact()
	}
	return true
}

func (r *registry) compact() {
	slots := make([]*Field, 0, r.live)
	for _, f := range r.slots {
		if f != nil {
			r.index[f.id] = len(slots)
			slots = append(slots, f)
		}
	}
	r.slots = slots
}

// first returns the first live field, in registration order, matching fn.
func (r *registry) first(fn func(*Field) bool) *Field {
	for _, f := range r.slots {
		if f != nil && fn(f) {
			return f
		}
	}
	return nil
}

// snapshot returns the live fields in registration order.
func (r *registry) snapshot() []*Field {
	out := make([]*Field, 0, r.live)
	for _, f := range r.slots {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

func (r *registry) len() int { return r.live }
